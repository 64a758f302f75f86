// Package units converts lengths, weights and temperatures.
package units

import (
	"strconv"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Category groups convertible units.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temp"
)

// Unit is a selectable unit. Ratio is relative to the metre or the
// kilogram and unused for temperatures.
type Unit struct {
	Symbol string  `json:"symbol"`
	Label  string  `json:"label"`
	Ratio  float64 `json:"ratio,omitempty"`
}

var table = map[Category][]Unit{
	Length: {
		{"m", "Meters (m)", 1},
		{"km", "Kilometers (km)", 1000},
		{"cm", "Centimeters (cm)", 0.01},
		{"mi", "Miles (mi)", 1609.34},
		{"in", "Inches (in)", 0.0254},
		{"ft", "Feet (ft)", 0.3048},
	},
	Weight: {
		{"kg", "Kilograms (kg)", 1},
		{"g", "Grams (g)", 0.001},
		{"lb", "Pounds (lb)", 0.453592},
		{"oz", "Ounces (oz)", 0.0283495},
	},
	Temperature: {
		{"c", "Celsius (°C)", 0},
		{"f", "Fahrenheit (°F)", 0},
		{"k", "Kelvin (K)", 0},
	},
}

// Units lists a category's units in display order.
func Units(c Category) []Unit {
	return append([]Unit(nil), table[c]...)
}

// CategoryOf finds which category a unit symbol belongs to.
func CategoryOf(symbol string) (Category, bool) {
	symbol = strings.ToLower(symbol)
	for c, us := range table {
		for _, u := range us {
			if u.Symbol == symbol {
				return c, true
			}
		}
	}
	return "", false
}

// Convert parses value and converts it between two units of the same
// category. Ratios print with four decimals, temperatures with two.
func Convert(value, from, to string) (string, error) {
	num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", apperr.Validationf("%q is not a number.", value)
	}
	from, to = strings.ToLower(from), strings.ToLower(to)
	cf, ok1 := CategoryOf(from)
	ct, ok2 := CategoryOf(to)
	if !ok1 || !ok2 {
		return "", apperr.Validationf("Unknown unit. Supported: %s.", strings.Join(symbols(), ", "))
	}
	if cf != ct {
		return "", apperr.Validationf("Cannot convert %s to %s.", cf, ct)
	}

	if cf == Temperature {
		return strconv.FormatFloat(fromCelsius(toCelsius(num, from), to), 'f', 2, 64), nil
	}
	r := num * ratio(cf, from) / ratio(cf, to)
	return strconv.FormatFloat(r, 'f', 4, 64), nil
}

func toCelsius(v float64, unit string) float64 {
	switch unit {
	case "f":
		return (v - 32) * 5 / 9
	case "k":
		return v - 273.15
	}
	return v
}

func fromCelsius(c float64, unit string) float64 {
	switch unit {
	case "f":
		return c*9/5 + 32
	case "k":
		return c + 273.15
	}
	return c
}

func ratio(c Category, symbol string) float64 {
	for _, u := range table[c] {
		if u.Symbol == symbol {
			return u.Ratio
		}
	}
	return 1
}

func symbols() []string {
	var out []string
	for _, c := range []Category{Length, Weight, Temperature} {
		for _, u := range table[c] {
			out = append(out, u.Symbol)
		}
	}
	return out
}
