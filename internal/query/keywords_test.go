package query

import (
	"reflect"
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
)

func TestHits(t *testing.T) {
	it := reference.Item{
		Title:    "Kitaev spin liquid",
		Authors:  []string{"Jane Doe"},
		Abstract: "Majorana fermions and qubits.",
		DOI:      "10.1103/xyz",
		Journal:  "Journal of Graphene",
	}
	got := Hits(it, []string{"Qubit", "graphene", " doe ", "10.1103", ""})
	want := []string{"Qubit", "doe", "10.1103"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hits() = %v, want %v", got, want)
	}
}

func TestKeywordStats(t *testing.T) {
	items := []reference.Item{
		{Title: "spin qubit"},
		{Title: "spin liquid qubit"},
		{Title: "liquid"},
		{Title: "nothing"},
	}
	stats := KeywordStats(items, []string{"spin", "qubit", "liquid"}, 0, 0)

	wantKw := []Count{{"liquid", 2}, {"qubit", 2}, {"spin", 2}}
	if !reflect.DeepEqual(stats.Keywords, wantKw) {
		t.Errorf("Keywords = %v, want %v", stats.Keywords, wantKw)
	}
	wantPairs := []Count{{"qubit ∩ spin", 2}, {"liquid ∩ qubit", 1}, {"liquid ∩ spin", 1}}
	if !reflect.DeepEqual(stats.Pairs, wantPairs) {
		t.Errorf("Pairs = %v, want %v", stats.Pairs, wantPairs)
	}

	limited := KeywordStats(items, []string{"spin", "qubit", "liquid"}, 1, 1)
	if len(limited.Keywords) != 1 || len(limited.Pairs) != 1 {
		t.Errorf("limits not applied: %+v", limited)
	}
}
