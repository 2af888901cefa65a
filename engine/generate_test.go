package engine

import "testing"

func TestGenerateItemsCatalog(t *testing.T) {
	items := GenerateItems()
	if len(items) != CatalogSize {
		t.Fatalf("catalog has %d items, want %d", len(items), CatalogSize)
	}

	perColor := make(map[Color]map[int]bool)
	ids := make(map[string]bool)
	for _, it := range items {
		if ids[it.ID] {
			t.Errorf("duplicate item ID %q", it.ID)
		}
		ids[it.ID] = true
		if perColor[it.Color] == nil {
			perColor[it.Color] = make(map[int]bool)
		}
		perColor[it.Color][it.Count] = true
	}

	for _, color := range Colors {
		counts := perColor[color]
		if len(counts) != 10 {
			t.Fatalf("color %s has %d distinct counts, want 10", color, len(counts))
		}
		for c := 1; c <= 10; c++ {
			if !counts[c] {
				t.Errorf("color %s missing count %d", color, c)
			}
		}
	}
}

func TestGenerateItemsIdempotent(t *testing.T) {
	a := GenerateItems()
	b := GenerateItems()
	if !CompareSlices(a, b) {
		t.Errorf("two catalog generations differ")
	}
}

func TestGenerateUsersReproducible(t *testing.T) {
	a := GenerateUsers(NewRNG(42), 50, "u-")
	b := GenerateUsers(NewRNG(42), 50, "u-")
	if !CompareSlices(a, b) {
		t.Errorf("same-seed user generations differ")
	}

	c := GenerateUsers(NewRNG(43), 50, "u-")
	attrsDiffer := false
	for i := range a {
		if c[i].ID != a[i].ID {
			t.Errorf("identity scheme depends on seed: %q vs %q", c[i].ID, a[i].ID)
		}
		if c[i].R != a[i].R || c[i].G != a[i].G || c[i].B != a[i].B {
			attrsDiffer = true
		}
	}
	if !attrsDiffer {
		t.Errorf("different seeds produced identical attributes")
	}
}

func TestGenerateUsersIdentitiesAndRanges(t *testing.T) {
	users := GenerateUsers(NewRNG(1), 200, "train-")
	if users[0].ID != "train-0001" {
		t.Errorf("first user ID = %q, want train-0001", users[0].ID)
	}
	if users[199].ID != "train-0200" {
		t.Errorf("last user ID = %q, want train-0200", users[199].ID)
	}

	ids := make(map[string]bool)
	for _, u := range users {
		if ids[u.ID] {
			t.Errorf("duplicate user ID %q", u.ID)
		}
		ids[u.ID] = true
		for _, v := range []int{u.R, u.G, u.B} {
			if v < 0 || v > 255 {
				t.Errorf("user %s attribute %d out of [0,255]", u.ID, v)
			}
		}
	}
}
