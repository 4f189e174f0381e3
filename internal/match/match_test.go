package match

import (
	"testing"

	"github.com/sandevgo/caliando/internal/core"
)

var cached = []core.Candidate{
	{Name: "Cristo Rey", SourceKind: "imperdibles", ReferenceID: 1},
	{Name: "Museo La Tertulia", SourceKind: "museos", ReferenceID: 2},
	{Name: "Tour gastronómico por San Antonio", SourceKind: "civitatis", ReferenceID: 3},
	{Name: "Zoológico de Cali", SourceKind: "imperdibles", ReferenceID: 4},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantRef int64
		wantOK  bool
	}{
		{"numeric_index", "2", 2, true},
		{"numeric_index_first", "1", 1, true},
		{"numeric_out_of_range", "9", 0, false},
		{"numeric_zero", "0", 0, false},
		{"full_name", "Museo La Tertulia", 2, true},
		{"partial_name", "tertulia", 2, true},
		{"accent_insensitive", "zoologico", 4, true},
		{"name_in_sentence", "quiero ir al museo la tertulia hoy", 2, true},
		{"typo_fuzzy", "terulia", 2, true},
		{"typo_fuzzy_two", "cristo rei", 1, true},
		{"unrelated", "xyz-unrelated", 0, false},
		{"empty", "   ", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(cached, tt.reply)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v (got %+v)", tt.reply, ok, tt.wantOK, got)
			}
			if ok && got.ReferenceID != tt.wantRef {
				t.Errorf("Resolve(%q) = %q (ref %d), want ref %d", tt.reply, got.Name, got.ReferenceID, tt.wantRef)
			}
		})
	}
}

func TestResolve_EmptyCache(t *testing.T) {
	if _, ok := Resolve(nil, "tertulia"); ok {
		t.Error("empty cache must never match")
	}
}

func TestResolve_NumericBeatsName(t *testing.T) {
	// A purely numeric reply is always treated as a selection index,
	// even if some candidate name contains digits.
	list := []core.Candidate{
		{Name: "Sala 2", ReferenceID: 10},
		{Name: "Teatro Municipal", ReferenceID: 11},
	}
	got, ok := Resolve(list, "2")
	if !ok || got.ReferenceID != 11 {
		t.Errorf("Resolve(\"2\") = %+v ok=%v, want index selection of second item", got, ok)
	}
}
