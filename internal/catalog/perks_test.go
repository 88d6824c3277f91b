package catalog

import "testing"

func TestPerkTableShape(t *testing.T) {
	if got := len(Perks()); got != 18 {
		t.Fatalf("want 18 perks, got %d", got)
	}
	wantPerTier := map[int]int{1: 5, 2: 5, 3: 8}
	for tier, want := range wantPerTier {
		if got := len(PerksByTier(tier)); got != want {
			t.Fatalf("tier %d: want %d perks, got %d", tier, want, got)
		}
	}

	names := map[string]bool{}
	for _, e := range Perks() {
		if e.Kind == PerkUnknown {
			t.Fatalf("catalog entry with unknown kind: %+v", e)
		}
		if e.Name == "" || e.Description == "" {
			t.Fatalf("catalog entry missing text: %+v", e)
		}
		if names[e.Name] {
			t.Fatalf("duplicate perk name %q", e.Name)
		}
		names[e.Name] = true
		if TierPrice(e.Tier) == 0 {
			t.Fatalf("perk %q has unpriced tier %d", e.Name, e.Tier)
		}
	}
}

func TestPerkLookups(t *testing.T) {
	golden, ok := PerkByKind(PerkGoldenPass)
	if !ok || golden.Name != "Pase Dorado" || golden.Tier != 3 {
		t.Fatalf("golden pass lookup: %+v ok=%v", golden, ok)
	}

	byName, ok := PerkByName(golden.Name)
	if !ok || byName.Kind != PerkGoldenPass {
		t.Fatalf("name lookup: %+v ok=%v", byName, ok)
	}

	if _, ok := PerkByName("Comodín"); ok {
		t.Fatalf("unknown name resolved")
	}
	if _, ok := PerkByKind(PerkUnknown); ok {
		t.Fatalf("unknown kind resolved")
	}
}

func TestTierPrices(t *testing.T) {
	cases := map[int]int{1: 5, 2: 10, 3: 15, 4: 0, 0: 0}
	for tier, want := range cases {
		if got := TierPrice(tier); got != want {
			t.Fatalf("tier %d: want %d, got %d", tier, want, got)
		}
	}
}

func TestPerkDescription(t *testing.T) {
	if got := PerkDescription("Pase Dorado"); got != "Saltas tu reto y aún así obtienes las monedas." {
		t.Fatalf("known description: %q", got)
	}
	if got := PerkDescription("Beneficio retirado"); got != NoDescription {
		t.Fatalf("want placeholder, got %q", got)
	}
}

func TestRandomTierBoundaries(t *testing.T) {
	cases := []struct {
		roll float64
		want int
	}{
		{0, 1},
		{0.59, 1},
		{0.6, 2},
		{0.89, 2},
		{0.9, 3},
		{0.999, 3},
	}
	for _, tc := range cases {
		if got := RandomTier(tc.roll); got != tc.want {
			t.Fatalf("roll %v: want tier %d, got %d", tc.roll, tc.want, got)
		}
	}
}
