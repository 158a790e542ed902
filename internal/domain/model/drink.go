package model

// Category groups drinks on the menu.
type Category string

const (
	CategorySeasonal Category = "seasonal"
	CategoryClassic  Category = "classic"
	CategoryMilkTea  Category = "milk_tea"
	CategoryFruitTea Category = "fruit_tea"
)

// DefaultCategory is shown when the client does not ask for a specific one.
const DefaultCategory = CategorySeasonal

// Drink is a catalog item fetched from the backend.
type Drink struct {
	ID          string
	Name        string
	Description string
	Category    Category
	MediumPrice int
	LargePrice  int
	ImageURL    string
}

// PriceDifference returns the surcharge for upgrading to a large cup.
func (d Drink) PriceDifference() int {
	return d.LargePrice - d.MediumPrice
}

// FilterByCategory keeps drinks of the given category in catalog order.
func FilterByCategory(drinks []Drink, category Category) []Drink {
	result := make([]Drink, 0, len(drinks))
	for _, d := range drinks {
		if d.Category == category {
			result = append(result, d)
		}
	}
	return result
}
