package normalize

import (
	"reflect"
	"sync"
	"testing"
)

func TestAuthors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single given family", "Jane Doe", []string{"Jane Doe"}},
		{"single family given", "Doe, Jane", []string{"Doe, Jane"}},
		{"bibtex and", "Doe, Jane and Smith, John", []string{"Doe, Jane", "Smith, John"}},
		{"bibtex and mixed case", "Jane Doe AND John Smith", []string{"Jane Doe", "John Smith"}},
		{"comma list", "A. Smith, B. Jones, C. White", []string{"A. Smith", "B. Jones", "C. White"}},
		{"comma list with and", "A. Smith, B. Jones, and C. White", []string{"A. Smith", "B. Jones", "C. White"}},
		{"particle family", "van der Berg, Jan", []string{"van der Berg, Jan"}},
		{"braces stripped", "{\\\"U}ber, Hans and {Collaboration}", []string{"\\\"Uber, Hans", "Collaboration"}},
		{"no split inside word", "Alexander Sand", []string{"Alexander Sand"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authors(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Authors(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAuthorList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"string", "Jane Doe and John Smith", []string{"Jane Doe", "John Smith"}},
		{"string slice", []string{" Jane  Doe ", ""}, []string{"Jane Doe"}},
		{"mixed objects", []any{
			"Jane Doe",
			map[string]any{"name": "John Smith"},
			map[string]any{"given": "Ada", "family": "Lovelace"},
			map[string]any{"first": "Alan", "last": "Turing"},
			42,
		}, []string{"Jane Doe", "John Smith", "Ada Lovelace", "Alan Turing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorList(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AuthorList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSurname(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "Doe"},
		{"Doe, Jane", "Doe"},
		{"  ", "Anon"},
		{"", "Anon"},
		{"O'Brien, Pat", "OBrien"},
		{"Jean-Luc Picard", "Picard"},
		{"Hans Müller", "Müller"},
		{"山田 太郎", "太郎"},
		{"山田, 太郎", "山田"},
		{"---", "Anon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Surname(tt.name); got != tt.want {
				t.Errorf("Surname(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Müller Ångström"); got != "Muller Angstrom" {
		t.Errorf("Fold() = %q, want %q", got, "Muller Angstrom")
	}
}

func TestFold_Concurrent(t *testing.T) {
	inputs := []string{"Müller", "Ångström", "Erdős", "Gödel", "plain"}
	want := []string{"Muller", "Angstrom", "Erdos", "Godel", "plain"}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				i := n % len(inputs)
				if got := Fold(inputs[i]); got != want[i] {
					select {
					case errs <- got:
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("Fold() under concurrency returned %q", got)
	}
}
