// Package archetype maps a user's stated income source to a worker archetype
// used as a categorical feature by the income forecaster.
package archetype

import "strings"

// Archetype is a coarse worker-category label
type Archetype string

const (
	FoodDeliveryRider Archetype = "food_delivery_rider"
	CabDriver         Archetype = "cab_driver"
	Freelancer        Archetype = "freelancer"
	PartTimeLaborer   Archetype = "part_time_laborer"
	ShopAssistant     Archetype = "shop_assistant"
)

// Default is used when no answer exists or no keyword group matches.
const Default = FoodDeliveryRider

// keywordGroups is ordered: the first group with any matching keyword wins,
// regardless of where the keyword appears in the answer.
var keywordGroups = []struct {
	archetype Archetype
	keywords  []string
}{
	{FoodDeliveryRider, []string{"delivery", "swiggy", "zomato"}},
	{CabDriver, []string{"cab", "uber", "ola"}},
	{Freelancer, []string{"freelanc", "design"}},
	{PartTimeLaborer, []string{"labor", "construction"}},
	{ShopAssistant, []string{"shop", "retail"}},
}

// All lists every archetype the classifier can produce.
func All() []Archetype {
	return []Archetype{FoodDeliveryRider, CabDriver, Freelancer, PartTimeLaborer, ShopAssistant}
}

// Classify maps a free-text income-source answer to an archetype.
func Classify(incomeSource string) Archetype {
	answer := strings.ToLower(incomeSource)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(answer, kw) {
				return group.archetype
			}
		}
	}
	return Default
}
