package repository

import "testing"

func TestSortColumn(t *testing.T) {
	cases := []struct {
		name      string
		requested string
		want      string
	}{
		{"allowed column", "price", "price"},
		{"empty falls back", "", "name"},
		{"unknown column falls back", "category", "name"},
		{"injected clause falls back", "name; SELECT pg_sleep(10)", "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sortColumn(tc.requested, "name", productSortColumns)
			if got != tc.want {
				t.Errorf("sortColumn(%q) = %q, want %q", tc.requested, got, tc.want)
			}
		})
	}
}
