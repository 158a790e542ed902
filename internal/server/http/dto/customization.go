package dto

// OpenCustomizationRequest starts a form for a drink or for an existing order.
type OpenCustomizationRequest struct {
	DrinkID string `json:"drinkId"`
	OrderID string `json:"orderId"`
}

// SelectOptionRequest picks a choice in one exclusive group.
type SelectOptionRequest struct {
	Category string `json:"category" binding:"required"`
	Choice   string `json:"choice" binding:"required"`
}

// AddOnRequest toggles an add-on.
type AddOnRequest struct {
	Name string `json:"name" binding:"required"`
}

// CustomizationResponse is the state of a customization form.
type CustomizationResponse struct {
	ID           string        `json:"id"`
	Drink        DrinkResponse `json:"drink"`
	OrderID      string        `json:"orderId,omitempty"`
	EditMode     bool          `json:"editMode"`
	NumberOfCups int           `json:"numberOfCups"`
	Size         string        `json:"size,omitempty"`
	Temperature  string        `json:"temperature,omitempty"`
	Sugar        string        `json:"sugar,omitempty"`
	AddOns       []string      `json:"addOns"`
	Total        int           `json:"total"`
	Summary      string        `json:"summary"`
	State        string        `json:"state"`
	Missing      []string      `json:"missing"`
}

// MissingOptionsResponse explains why a submit was rejected.
type MissingOptionsResponse struct {
	Missing []string `json:"missing"`
	Prompts []string `json:"prompts"`
}
