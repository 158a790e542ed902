package usecase

import (
	"slices"
	"strings"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// SummarySeparator joins the selected labels in DisplaySummary.
const SummarySeparator = "•"

// EmptySelectionPrompt is shown before anything is selected.
const EmptySelectionPrompt = "請選擇尺寸、冰塊、甜度"

// SelectionState is the lifecycle of a customization form.
type SelectionState int

const (
	SelectionEmpty SelectionState = iota
	SelectionPartial
	SelectionReady
	SelectionSubmitted
)

func (s SelectionState) String() string {
	switch s {
	case SelectionEmpty:
		return "empty"
	case SelectionPartial:
		return "partially_selected"
	case SelectionReady:
		return "ready_to_submit"
	case SelectionSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Selection holds the choices made for one drink and keeps its price current.
// It is not safe for concurrent use.
type Selection struct {
	mediumPrice     int
	priceDifference int

	size        model.Size
	temperature model.Temperature
	sugar       model.Sugar
	addOns      []model.AddOn

	total     int
	submitted bool
}

// NewSelection starts an empty form priced as a medium cup.
func NewSelection(drink model.Drink) *Selection {
	return &Selection{
		mediumPrice:     drink.MediumPrice,
		priceDifference: drink.PriceDifference(),
		total:           drink.MediumPrice,
	}
}

// SelectionFromOrder pre-populates the form from an existing order.
// Labels outside the known option sets are left unselected.
func SelectionFromOrder(drink model.Drink, order model.Order) *Selection {
	s := NewSelection(drink)
	if size, err := model.ParseSize(string(order.Size)); err == nil {
		_ = s.SelectSize(size)
	}
	if t, err := model.ParseTemperature(string(order.Ice)); err == nil {
		_ = s.SelectTemperature(t)
	}
	if sugar, err := model.ParseSugar(string(order.Sugar)); err == nil {
		_ = s.SelectSugar(sugar)
	}
	for _, a := range order.AddOns {
		if addOn, err := model.ParseAddOn(string(a)); err == nil && !s.HasAddOn(addOn) {
			_, _ = s.ToggleAddOn(addOn)
		}
	}
	return s
}

// SelectSize replaces the cup size and moves the total by the large surcharge when crossing sizes.
func (s *Selection) SelectSize(size model.Size) error {
	if s.submitted {
		return domainErrors.ErrSessionClosed
	}
	wasLarge := s.size == model.SizeLarge
	isLarge := size == model.SizeLarge
	switch {
	case !wasLarge && isLarge:
		s.total += s.priceDifference
	case wasLarge && !isLarge:
		s.total -= s.priceDifference
	}
	s.size = size
	return nil
}

func (s *Selection) SelectTemperature(t model.Temperature) error {
	if s.submitted {
		return domainErrors.ErrSessionClosed
	}
	s.temperature = t
	return nil
}

func (s *Selection) SelectSugar(sugar model.Sugar) error {
	if s.submitted {
		return domainErrors.ErrSessionClosed
	}
	s.sugar = sugar
	return nil
}

// SelectOption validates the choice against its category and applies it.
func (s *Selection) SelectOption(category model.OptionCategory, choice string) error {
	switch category {
	case model.OptionSize:
		size, err := model.ParseSize(choice)
		if err != nil {
			return err
		}
		return s.SelectSize(size)
	case model.OptionTemperature:
		t, err := model.ParseTemperature(choice)
		if err != nil {
			return err
		}
		return s.SelectTemperature(t)
	case model.OptionSugar:
		sugar, err := model.ParseSugar(choice)
		if err != nil {
			return err
		}
		return s.SelectSugar(sugar)
	default:
		_, err := model.ParseOptionCategory(string(category))
		return err
	}
}

// ToggleAddOn flips inclusion of the add-on and reports whether it is now included.
func (s *Selection) ToggleAddOn(addOn model.AddOn) (bool, error) {
	if s.submitted {
		return false, domainErrors.ErrSessionClosed
	}
	if i := slices.Index(s.addOns, addOn); i >= 0 {
		s.addOns = slices.Delete(s.addOns, i, i+1)
		s.total -= model.AddOnSurcharge
		return false, nil
	}
	s.addOns = append(s.addOns, addOn)
	s.total += model.AddOnSurcharge
	return true, nil
}

func (s *Selection) HasAddOn(addOn model.AddOn) bool {
	return slices.Contains(s.addOns, addOn)
}

func (s *Selection) Size() model.Size               { return s.size }
func (s *Selection) Temperature() model.Temperature { return s.temperature }
func (s *Selection) Sugar() model.Sugar             { return s.sugar }
func (s *Selection) AddOns() []model.AddOn          { return slices.Clone(s.addOns) }

// Total is the running per-cup price.
func (s *Selection) Total() int { return s.total }

// Recompute derives the per-cup price from the current choices alone.
func (s *Selection) Recompute() int {
	total := s.mediumPrice + model.AddOnSurcharge*len(s.addOns)
	if s.size == model.SizeLarge {
		total += s.priceDifference
	}
	return total
}

// DisplaySummary joins size, temperature, sugar and add-ons in selection order.
func (s *Selection) DisplaySummary() string {
	labels := make([]string, 0, 3+len(s.addOns))
	if s.size != "" {
		labels = append(labels, string(s.size))
	}
	if s.temperature != "" {
		labels = append(labels, string(s.temperature))
	}
	if s.sugar != "" {
		labels = append(labels, string(s.sugar))
	}
	for _, a := range s.addOns {
		labels = append(labels, string(a))
	}
	if len(labels) == 0 {
		return EmptySelectionPrompt
	}
	return strings.Join(labels, SummarySeparator)
}

// Missing lists the unselected required categories in display order.
func (s *Selection) Missing() []model.OptionCategory {
	var missing []model.OptionCategory
	if s.size == "" {
		missing = append(missing, model.OptionSize)
	}
	if s.temperature == "" {
		missing = append(missing, model.OptionTemperature)
	}
	if s.sugar == "" {
		missing = append(missing, model.OptionSugar)
	}
	return missing
}

// ValidateRequired returns a MissingOptionsError when the policy finds gaps.
func (s *Selection) ValidateRequired(policy RequiredPolicy) error {
	missing := policy.Missing(s)
	if len(missing) == 0 {
		return nil
	}
	categories := make([]string, 0, len(missing))
	for _, c := range missing {
		categories = append(categories, string(c))
	}
	return &domainErrors.MissingOptionsError{Categories: categories}
}

func (s *Selection) State() SelectionState {
	switch {
	case s.submitted:
		return SelectionSubmitted
	case s.size == "" && s.temperature == "" && s.sugar == "" && len(s.addOns) == 0:
		return SelectionEmpty
	case len(s.Missing()) == 0:
		return SelectionReady
	default:
		return SelectionPartial
	}
}

// MarkSubmitted freezes the form.
func (s *Selection) MarkSubmitted() {
	s.submitted = true
}

// CreateFields builds the payload of a new single-cup order.
func (s *Selection) CreateFields(drink model.Drink, owner string) model.OrderFields {
	return model.OrderFields{
		DrinkName:    drink.Name,
		Size:         s.size,
		Ice:          s.temperature,
		Sugar:        s.sugar,
		AddOns:       s.AddOns(),
		Price:        s.total,
		NumberOfCups: 1,
		ImageURL:     drink.ImageURL,
		OrderName:    owner,
	}
}

// UpdateFields builds the patch for an existing order keeping its cup count.
func (s *Selection) UpdateFields(numberOfCups int) model.OrderFields {
	if numberOfCups < 1 {
		numberOfCups = 1
	}
	return model.OrderFields{
		Size:         s.size,
		Ice:          s.temperature,
		Sugar:        s.sugar,
		AddOns:       s.AddOns(),
		Price:        s.total * numberOfCups,
		NumberOfCups: numberOfCups,
	}
}
