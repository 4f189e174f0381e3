package catalog

import "testing"

func TestSourceTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"civitatis", "civitatis"},
		{"https://www.civitatis.com/co/cali/tour", "civitatis"},
		{"https://www.visitcali.travel/museos/", "museos"},
		{"museos", "museos"},
		{"imperdibles", "imperdibles"},
		{"sheets_detalles", "sheets_detalles"},
		{"algo_raro", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SourceTable(tt.in); got != tt.want {
			t.Errorf("SourceTable(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetailQueries_CoverEveryKnownTable(t *testing.T) {
	for _, table := range []string{"civitatis", "museos", "imperdibles", "sheets_detalles"} {
		if _, ok := detailQueries[table]; !ok {
			t.Errorf("no detail query registered for %q", table)
		}
	}
}
