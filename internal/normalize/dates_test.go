package normalize

import "testing"

func TestToDateISO(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day string
		want             string
	}{
		{"full numeric", "2024", "3", "15", "2024-03-15T00:00:00Z"},
		{"month abbreviation", "2024", "Mar", "", "2024-03-01T00:00:00Z"},
		{"month name case insensitive", "2024", "SEPTEMBER", "2", "2024-09-02T00:00:00Z"},
		{"missing month", "2024", "", "", "2024-01-01T00:00:00Z"},
		{"invalid month", "2024", "13", "5", "2024-01-05T00:00:00Z"},
		{"invalid day", "2023", "2", "30", "2023-02-01T00:00:00Z"},
		{"braced year", "{2020}", "dec", "31", "2020-12-31T00:00:00Z"},
		{"missing year", "", "3", "1", ""},
		{"garbage year", "n.d.", "3", "1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDateISO(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("ToDateISO(%q, %q, %q) = %q, want %q", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-01-21T08:30:00+08:00", "2026-01-21T00:30:00Z"},
		{"2026-01-21", "2026-01-21T00:00:00Z"},
		{"Wed, 21 Jan 2026 10:00:00 +0000", "2026-01-21T10:00:00Z"},
		{"yesterday", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Date(tt.in); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestYearAndMonthOf(t *testing.T) {
	if got := YearOf("2025-07-04T00:00:00Z"); got != "2025" {
		t.Errorf("YearOf() = %q, want 2025", got)
	}
	if got := MonthAbbrOf("2025-07-04T00:00:00Z"); got != "Jul" {
		t.Errorf("MonthAbbrOf() = %q, want Jul", got)
	}
	if got := YearOf(""); got != "" {
		t.Errorf("YearOf(\"\") = %q, want empty", got)
	}
}
