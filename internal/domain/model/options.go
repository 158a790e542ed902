package model

import (
	"fmt"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
)

// OptionCategory names an exclusive option group of the customization form.
type OptionCategory string

const (
	OptionSize        OptionCategory = "size"
	OptionTemperature OptionCategory = "temperature"
	OptionSugar       OptionCategory = "sugar"
)

// RequiredCategories lists exclusive groups in display order.
var RequiredCategories = []OptionCategory{OptionSize, OptionTemperature, OptionSugar}

// Prompt returns the message shown when the category is still unselected.
func (c OptionCategory) Prompt() string {
	switch c {
	case OptionSize:
		return "請選擇尺寸"
	case OptionTemperature:
		return "請選擇冰塊"
	case OptionSugar:
		return "請選擇甜度"
	default:
		return "請選擇" + string(c)
	}
}

// Size is a cup size label as stored in orders.
type Size string

const (
	SizeMedium Size = "中杯"
	SizeLarge  Size = "大杯"
)

// Temperature is an ice or warmth level label.
type Temperature string

const (
	TemperatureRegularIce Temperature = "正常冰"
	TemperatureLessIce    Temperature = "少冰"
	TemperatureHalfIce    Temperature = "微冰"
	TemperatureIceFree    Temperature = "去冰"
	TemperatureWithoutIce Temperature = "完全去冰"
	TemperatureRoom       Temperature = "常溫"
	TemperatureWarm       Temperature = "溫"
	TemperatureHot        Temperature = "熱"
)

// Sugar is a sweetness level label.
type Sugar string

const (
	SugarRegular   Sugar = "正常糖"
	SugarLow       Sugar = "少糖"
	SugarHalf      Sugar = "半糖"
	SugarLight     Sugar = "微糖"
	SugarTwoTenths Sugar = "二分糖"
	SugarOneTenth  Sugar = "一分糖"
	SugarFree      Sugar = "無糖"
)

// AddOn is an optional topping label.
type AddOn string

const (
	AddOnWhiteTapioca  AddOn = "加白玉"
	AddOnAgarPearl     AddOn = "加水玉"
	AddOnConfectionery AddOn = "加菓玉"
)

// AddOnSurcharge is the price of every add-on.
const AddOnSurcharge = 10

var (
	sizes        = []Size{SizeMedium, SizeLarge}
	temperatures = []Temperature{
		TemperatureRegularIce, TemperatureLessIce, TemperatureHalfIce, TemperatureIceFree,
		TemperatureWithoutIce, TemperatureRoom, TemperatureWarm, TemperatureHot,
	}
	sugars = []Sugar{SugarRegular, SugarLow, SugarHalf, SugarLight, SugarTwoTenths, SugarOneTenth, SugarFree}
	addOns = []AddOn{AddOnWhiteTapioca, AddOnAgarPearl, AddOnConfectionery}
)

// Sizes returns all cup sizes.
func Sizes() []Size { return append([]Size(nil), sizes...) }

// Temperatures returns all temperature levels.
func Temperatures() []Temperature { return append([]Temperature(nil), temperatures...) }

// Sugars returns all sweetness levels.
func Sugars() []Sugar { return append([]Sugar(nil), sugars...) }

// AddOns returns all add-ons.
func AddOns() []AddOn { return append([]AddOn(nil), addOns...) }

// ParseSize validates a size label.
func ParseSize(v string) (Size, error) {
	for _, s := range sizes {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("size %q: %w", v, domainErrors.ErrInvalidOption)
}

// ParseTemperature validates a temperature label.
func ParseTemperature(v string) (Temperature, error) {
	for _, t := range temperatures {
		if string(t) == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("temperature %q: %w", v, domainErrors.ErrInvalidOption)
}

// ParseSugar validates a sweetness label.
func ParseSugar(v string) (Sugar, error) {
	for _, s := range sugars {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("sugar %q: %w", v, domainErrors.ErrInvalidOption)
}

// ParseAddOn validates an add-on label.
func ParseAddOn(v string) (AddOn, error) {
	for _, a := range addOns {
		if string(a) == v {
			return a, nil
		}
	}
	return "", fmt.Errorf("add-on %q: %w", v, domainErrors.ErrInvalidOption)
}

// ParseOptionCategory validates an exclusive option group name.
func ParseOptionCategory(v string) (OptionCategory, error) {
	for _, c := range RequiredCategories {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("option category %q: %w", v, domainErrors.ErrInvalidOption)
}

// OptionSets lists every choice a customization form offers.
type OptionSets struct {
	Sizes        []Size
	Temperatures []Temperature
	Sugars       []Sugar
	AddOns       []AddOn
}

func AllOptions() OptionSets {
	return OptionSets{
		Sizes:        Sizes(),
		Temperatures: Temperatures(),
		Sugars:       Sugars(),
		AddOns:       AddOns(),
	}
}
