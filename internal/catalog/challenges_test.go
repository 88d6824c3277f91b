package catalog

import "testing"

func TestChallengeCoins(t *testing.T) {
	cases := map[Difficulty]int{
		DifficultyEasy:   1,
		DifficultyMedium: 2,
		DifficultyHard:   3,
		"imposible":      0,
	}
	for d, want := range cases {
		if got := ChallengeCoins(d); got != want {
			t.Fatalf("%s: want %d, got %d", d, want, got)
		}
	}
}

func TestChallengePools(t *testing.T) {
	if len(Difficulties) != 3 {
		t.Fatalf("want 3 difficulty tiers, got %v", Difficulties)
	}
	for _, d := range Difficulties {
		pool := ChallengePool(d)
		if len(pool) == 0 {
			t.Fatalf("empty pool for %s", d)
		}
		seen := map[string]bool{}
		for _, desc := range pool {
			if desc == "" {
				t.Fatalf("%s: empty description", d)
			}
			if seen[desc] {
				t.Fatalf("%s: duplicate description %q", d, desc)
			}
			seen[desc] = true
		}
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		if !ValidDifficulty(d) {
			t.Fatalf("%s should be valid", d)
		}
	}
	if ValidDifficulty("imposible") {
		t.Fatalf("unknown difficulty accepted")
	}
}
