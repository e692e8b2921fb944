package archetype

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		answer string
		want   Archetype
	}{
		{"I deliver for Zomato", FoodDeliveryRider},
		{"swiggy partner", FoodDeliveryRider},
		{"Uber driver", CabDriver},
		{"I drive an ola cab", CabDriver},
		{"freelancing graphic design", Freelancer},
		{"construction site work", PartTimeLaborer},
		{"retail shop assistant", ShopAssistant},
		{"farming", FoodDeliveryRider}, // no group matches, default
		{"", FoodDeliveryRider},
	}

	for _, c := range cases {
		if got := Classify(c.answer); got != c.want {
			t.Fatalf("Classify(%q) = %s, want %s", c.answer, got, c.want)
		}
	}
}

func TestClassifyGroupPrecedence(t *testing.T) {
	t.Parallel()

	// Mentions both cab and delivery terms; delivery's group comes first, so
	// it wins even though "cab" appears earlier in the text.
	if got := Classify("cab rides plus food delivery"); got != FoodDeliveryRider {
		t.Fatalf("Classify = %s, want %s (group order breaks ties)", got, FoodDeliveryRider)
	}
}
