package author

import "testing"

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{"single word is last name", "Doe", Query{Last: "Doe"}},
		{"two words is First Last", "Jane Doe", Query{First: "Jane", Last: "Doe"}},
		{"middle initial joins first name", "Jane Q Doe", Query{First: "Jane Q", Last: "Doe"}},
		{"comma format", "Doe, Jane", Query{First: "Jane", Last: "Doe"}},
		{"comma format with spaces", "Doe,   Jane Q", Query{First: "Jane Q", Last: "Doe"}},
		{"surrounding whitespace", "  Zhang  ", Query{Last: "Zhang"}},
		{"empty", "", Query{}},
		{"whitespace only", "   ", Query{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.input); got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		display string
		want    Name
	}{
		{"Jane Doe", Name{First: "Jane", Last: "Doe"}},
		{"Doe, Jane", Name{First: "Jane", Last: "Doe"}},
		{"Zhang", Name{Last: "Zhang"}},
		{"", Name{}},
	}
	for _, tt := range tests {
		if got := SplitName(tt.display); got != tt.want {
			t.Errorf("SplitName(%q) = %+v, want %+v", tt.display, got, tt.want)
		}
	}
}

func TestQueryMatches(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		display string
		want    bool
	}{
		{"exact last name", "Doe", "Jane Q Doe", true},
		{"last name case insensitive", "doe", "Jane Doe", true},
		{"last name accent insensitive", "Muller", "Anna Müller", true},
		{"no partial last name", "Yu", "Yujia Chen", false},
		{"first and last", "Jane Doe", "Jane Q Doe", true},
		{"first name prefix", "J Doe", "Jane Doe", true},
		{"surname-first display name", "Jane Doe", "Doe, Jane", true},
		{"first name mismatch", "John Doe", "Jane Doe", false},
		{"last name mismatch", "Jane Roe", "Jane Doe", false},
		{"empty query matches nothing", "", "Jane Doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.query).Matches(tt.display); got != tt.want {
				t.Errorf("ParseQuery(%q).Matches(%q) = %v, want %v", tt.query, tt.display, got, tt.want)
			}
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []string{"Jane Doe", "Wei Zhang", "Müller, Anna"}

	tests := []struct {
		name    string
		queries []string
		want    bool
	}{
		{"both match", []string{"Doe", "Zhang"}, true},
		{"one missing", []string{"Doe", "Chen"}, false},
		{"no queries match everything", nil, true},
		{"surname-first author", []string{"Anna Muller"}, true},
		{"Yu does not match Yujia", []string{"Yu"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var qs []Query
			for _, s := range tt.queries {
				qs = append(qs, ParseQuery(s))
			}
			if got := AllMatch(qs, authors); got != tt.want {
				t.Errorf("AllMatch(%v) = %v, want %v", tt.queries, got, tt.want)
			}
		})
	}
}
