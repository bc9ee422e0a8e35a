package normalize

import "testing"

func TestDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1103/PhysRevLett.132.123401", "10.1103/PhysRevLett.132.123401"},
		{"https://doi.org/10.1038/s41567-024-0001-x", "10.1038/s41567-024-0001-x"},
		{"doi:10.1/abc.", "10.1/abc"},
		{"DOI: 10.1234/abc.", "10.1234/abc"},
		{"https://dx.doi.org/10.1/X", "10.1/X"},
		{"see 10.1234/abc for details", "10.1234/abc"},
		{"no doi here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DOI(tt.in); got != tt.want {
				t.Errorf("DOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Published [Phys. Rev. B 109, 1] DOI: 10.1103/PhysRevB.109.1.", "10.1103/PhysRevB.109.1"},
		{"http://link.aps.org/doi/10.1103/x4y2-abcd", "10.1103/x4y2-abcd"},
		{"10.1/abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FindDOI(tt.in); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArxivID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2408.01234", "2408.01234"},
		{"2408.01234v3", "2408.01234"},
		{"https://arxiv.org/abs/2408.01234v1", "2408.01234"},
		{"http://arxiv.org/pdf/2408.01234", "2408.01234"},
		{"arXiv:1501.0001", "1501.0001"},
		{"cond-mat/0101001", "cond-mat/0101001"},
		{"https://arxiv.org/abs/hep-th/9901001v2", "hep-th/9901001"},
		{"", ""},
		{"not an id", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ArxivID(tt.in); got != tt.want {
				t.Errorf("ArxivID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArxivFromURL(t *testing.T) {
	if got := ArxivFromURL("https://arxiv.org/abs/2401.12345"); got != "2401.12345" {
		t.Errorf("ArxivFromURL() = %q", got)
	}
	if got := ArxivFromURL("https://journals.aps.org/prl/abstract/10.1103/2401.12345"); got != "" {
		t.Errorf("ArxivFromURL() on non-arXiv link = %q, want empty", got)
	}
}

func TestEnsureHTTPS(t *testing.T) {
	tests := []struct{ in, want string }{
		{"//example.org/x", "https://example.org/x"},
		{"http://example.org", "https://example.org"},
		{"https://example.org", "https://example.org"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EnsureHTTPS(tt.in); got != tt.want {
			t.Errorf("EnsureHTTPS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
