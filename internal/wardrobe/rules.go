package wardrobe

import (
	"context"
	"strings"
)

type band struct {
	below float64 // exclusive upper bound; ties go to the next band
	lines []string
}

var bands = []band{
	{below: 0, lines: []string{
		"🧥 Top: thermal underwear + sweater + heavy coat",
		"👖 Bottom: thermal leggings + thick trousers",
		"🧤 Accessories: hat, scarf and gloves are a must",
	}},
	{below: 10, lines: []string{
		"🧥 Top: long-sleeve shirt + sweater + jacket",
		"👖 Bottom: long trousers",
		"🧣 Accessories: scarf, hat",
	}},
	{below: 20, lines: []string{
		"👔 Top: long-sleeve shirt + light jacket",
		"👖 Bottom: trousers or jeans",
		"🧢 Accessories: a light scarf is optional",
	}},
	{below: 25, lines: []string{
		"👕 Top: long-sleeve T-shirt or thin shirt",
		"👖 Bottom: trousers or casual pants",
	}},
}

var hotBand = []string{
	"👕 Top: short-sleeve T-shirt or thin shirt",
	"🩳 Bottom: shorts or thin trousers",
	"🧴 Note: sun protection and staying hydrated",
}

type advisory struct {
	keywords []string
	line     string
}

// Checked in order; only the first matching family is reported.
var advisories = []advisory{
	{keywords: []string{"rain", "shower", "雨", "阵雨"}, line: "☔ Heads-up: bring an umbrella or wear a waterproof jacket"},
	{keywords: []string{"snow", "雪"}, line: "❄️ Heads-up: wear non-slip shoes and keep warm"},
	{keywords: []string{"wind", "风"}, line: "💨 Heads-up: choose a windproof jacket"},
}

const (
	shoesCold    = "👢 Shoes: warm boots or thick-soled shoes"
	shoesHot     = "👟 Shoes: breathable sneakers or sandals"
	shoesDefault = "👟 Shoes: comfortable sneakers or casual shoes"
)

// RuleBook is the deterministic recommender. It never fails.
type RuleBook struct{}

func NewRuleBook() RuleBook { return RuleBook{} }

func (RuleBook) Recommend(_ context.Context, c Conditions) (string, error) {
	return Suggest(c.TempC, c.Condition), nil
}

// Suggest applies the rule table to a temperature in °C and a condition label.
func Suggest(tempC float64, condition string) string {
	var lines []string

	lines = append(lines, garments(tempC)...)

	if line, ok := conditionAdvisory(condition); ok {
		lines = append(lines, line)
	}

	lines = append(lines, footwear(tempC))

	return strings.Join(lines, "\n")
}

func garments(tempC float64) []string {
	for _, b := range bands {
		if tempC < b.below {
			return b.lines
		}
	}
	return hotBand
}

func conditionAdvisory(condition string) (string, bool) {
	lower := strings.ToLower(condition)
	for _, a := range advisories {
		for _, kw := range a.keywords {
			if strings.Contains(lower, kw) {
				return a.line, true
			}
		}
	}
	return "", false
}

func footwear(tempC float64) string {
	switch {
	case tempC < 5:
		return shoesCold
	case tempC > 25:
		return shoesHot
	default:
		return shoesDefault
	}
}
