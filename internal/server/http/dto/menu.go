package dto

// DrinkResponse describes a catalog item.
type DrinkResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MediumPrice int    `json:"mediumPrice"`
	LargePrice  int    `json:"largePrice"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// MenuResponse lists drinks of one category.
type MenuResponse struct {
	Category string          `json:"category"`
	Drinks   []DrinkResponse `json:"drinks"`
}

// OptionsResponse lists the choices of the customization form.
type OptionsResponse struct {
	Sizes          []string `json:"sizes"`
	Temperatures   []string `json:"temperatures"`
	Sugars         []string `json:"sugars"`
	AddOns         []string `json:"addOns"`
	AddOnSurcharge int      `json:"addOnSurcharge"`
}
