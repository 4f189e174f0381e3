package rank

import (
	"testing"

	"github.com/sandevgo/caliando/internal/core"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"Gratis", 0},
		{"GRATIS para todos", 0},
		{"free", 0},
		{"25000", 25000},
		{"10.000", 10000},
		{"$ 25,000 COP", 25000},
		{"Desde 12.500", 12500},
		{"abc", PriceUnknown},
		{"—", PriceUnknown},
		{"", PriceUnknown},
	}
	for _, tt := range tests {
		if got := ParsePrice(tt.in); got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func entries() []Entry {
	return []Entry{
		{Candidate: core.Candidate{Name: "Caminata"}, PriceText: "Gratis"},
		{Candidate: core.Candidate{Name: "Tour nocturno"}, PriceText: "25000"},
		{Candidate: core.Candidate{Name: "Museo"}, PriceText: "10.000"},
		{Candidate: core.Candidate{Name: "Misterio"}, PriceText: "abc"},
	}
}

func names(ranked []Entry) []string {
	out := make([]string, len(ranked))
	for i, e := range ranked {
		out[i] = e.Candidate.Name
	}
	return out
}

func TestRank_Ascending(t *testing.T) {
	got := names(Rank(entries(), true, DefaultLimit))
	want := []string{"Caminata", "Museo", "Tour nocturno", "Misterio"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order = %v, want %v", got, want)
		}
	}
}

func TestRank_Descending(t *testing.T) {
	got := names(Rank(entries(), false, DefaultLimit))
	want := []string{"Tour nocturno", "Museo", "Caminata", "Misterio"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending order = %v, want %v", got, want)
		}
	}
}

func TestRank_UnknownNeverBeforePriced(t *testing.T) {
	for _, asc := range []bool{true, false} {
		ranked := Rank(entries(), asc, 0)
		if ranked[len(ranked)-1].Candidate.Name != "Misterio" {
			t.Errorf("asc=%v: unknown price not last: %v", asc, names(ranked))
		}
	}
}

func TestRank_LimitAndStability(t *testing.T) {
	tied := []Entry{
		{Candidate: core.Candidate{Name: "A"}, PriceText: "5000"},
		{Candidate: core.Candidate{Name: "B"}, PriceText: "5.000"},
		{Candidate: core.Candidate{Name: "C"}, PriceText: "1000"},
	}
	got := names(Rank(tied, true, 2))
	if len(got) != 2 || got[0] != "C" || got[1] != "A" {
		t.Errorf("ranked = %v, want [C A] (stable ties, limit 2)", got)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := entries()
	Rank(in, true, 2)
	if in[0].Candidate.Name != "Caminata" || in[3].Candidate.Name != "Misterio" {
		t.Error("Rank mutated its input slice")
	}
}

func TestComparableSource(t *testing.T) {
	if !ComparableSource("civitatis") || !ComparableSource("https://www.civitatis.com/co/cali") {
		t.Error("civitatis sources must be comparable")
	}
	if ComparableSource("museos") || ComparableSource("sheets_detalles") {
		t.Error("non-civitatis sources must not be comparable")
	}
}
