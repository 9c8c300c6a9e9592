package resolve

import "testing"

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Common Cold", want: "common cold"},
		{in: "  common   cold  ", want: "common cold"},
		{in: "przeziębienie", want: "przeziebienie"},
		{in: "Fièvre", want: "fievre"},
		{in: "café au lait", want: "cafe au lait"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		if got := normalizeTerm(tt.in); got != tt.want {
			t.Errorf("normalizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
