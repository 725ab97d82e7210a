package discovery

import "strings"

// specificRestaurantTypes are the Places types considered specific
// enough to display as a cuisine label, most specific first wins.
var specificRestaurantTypes = []string{
	"american_restaurant",
	"bakery",
	"bar",
	"barbecue_restaurant",
	"brazilian_restaurant",
	"breakfast_restaurant",
	"brunch_restaurant",
	"buffet_restaurant",
	"burger_restaurant",
	"cafe",
	"chinese_restaurant",
	"coffee_shop",
	"dessert_shop",
	"diner",
	"fast_food_restaurant",
	"french_restaurant",
	"greek_restaurant",
	"ice_cream_shop",
	"indian_restaurant",
	"italian_restaurant",
	"japanese_restaurant",
	"korean_restaurant",
	"latin_american_restaurant",
	"mediterranean_restaurant",
	"mexican_restaurant",
	"middle_eastern_restaurant",
	"pizza_restaurant",
	"ramen_restaurant",
	"sandwich_shop",
	"seafood_restaurant",
	"steak_house",
	"sushi_restaurant",
	"thai_restaurant",
	"vietnamese_restaurant",
}

// genericTypes never qualify as a cuisine label on their own.
var genericTypes = map[string]bool{
	"restaurant":        true,
	"food":              true,
	"point_of_interest": true,
	"establishment":     true,
}

// CuisineLabel picks a display cuisine from a place's type tags: the
// first known specific type, else any other *restaurant* tag, else a
// plain "Restaurant".
func CuisineLabel(types []string) string {
	for _, t := range types {
		for _, specific := range specificRestaurantTypes {
			if t == specific {
				return titleCase(t)
			}
		}
	}

	for _, t := range types {
		if strings.Contains(t, "restaurant") && !genericTypes[t] {
			return titleCase(t)
		}
	}

	return "Restaurant"
}

// titleCase turns a snake_case place type into a display label, e.g.
// "sushi_restaurant" -> "Sushi Restaurant".
func titleCase(placeType string) string {
	words := strings.Split(placeType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
