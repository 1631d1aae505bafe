package repository

import (
	"testing"
)

func TestCleanFacetValues(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "drops empty and blank entries",
			in:   []string{"", "Assisted Living", "   ", "Home Health"},
			want: []string{"Assisted Living", "Home Health"},
		},
		{
			name: "sorts lexicographically",
			in:   []string{"T1019", "H0038", "S5125"},
			want: []string{"H0038", "S5125", "T1019"},
		},
		{
			name: "empty input yields empty non-nil slice",
			in:   []string{},
			want: []string{},
		},
		{
			name: "all blank yields empty slice",
			in:   []string{"", " "},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanFacetValues(tt.in)
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("value %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
