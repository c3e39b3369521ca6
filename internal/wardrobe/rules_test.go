package wardrobe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_Bands(t *testing.T) {
	tests := []struct {
		temp float64
		top  string
	}{
		{-12, "thermal underwear"},
		{-0.1, "thermal underwear"},
		{0, "long-sleeve shirt + sweater + jacket"},
		{9.9, "long-sleeve shirt + sweater + jacket"},
		{10, "long-sleeve shirt + light jacket"},
		{19.99, "long-sleeve shirt + light jacket"},
		{20, "long-sleeve T-shirt or thin shirt"},
		{24.5, "long-sleeve T-shirt or thin shirt"},
		{25, "short-sleeve T-shirt"},
		{38, "short-sleeve T-shirt"},
	}

	allTops := []string{
		"thermal underwear",
		"long-sleeve shirt + sweater + jacket",
		"long-sleeve shirt + light jacket",
		"long-sleeve T-shirt or thin shirt",
		"short-sleeve T-shirt",
	}

	for _, tt := range tests {
		got := Suggest(tt.temp, "Clear")
		assert.Contains(t, got, tt.top, "temp %v", tt.temp)

		matched := 0
		for _, top := range allTops {
			if strings.Contains(got, "Top: "+top) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "temp %v should select exactly one band", tt.temp)
	}
}

func TestSuggest_Footwear(t *testing.T) {
	assert.Contains(t, Suggest(4.9, ""), shoesCold)
	assert.Contains(t, Suggest(5, ""), shoesDefault)
	assert.Contains(t, Suggest(25, ""), shoesDefault)
	assert.Contains(t, Suggest(25.1, ""), shoesHot)
}

func TestSuggest_Advisories(t *testing.T) {
	rain := advisories[0].line
	snow := advisories[1].line
	wind := advisories[2].line

	tests := []struct {
		condition string
		want      string
	}{
		{"Rain showers expected", rain},
		{"LIGHT RAIN", rain},
		{"Patchy light drizzle, shower", rain},
		{"小雨", rain},
		{"阵雨", rain},
		{"Heavy snow", snow},
		{"大雪", snow},
		{"Windy", wind},
		{"大风", wind},
		{"Rain and snow", rain},
	}

	for _, tt := range tests {
		got := Suggest(12, tt.condition)
		assert.Contains(t, got, tt.want, tt.condition)

		count := 0
		for _, a := range advisories {
			if strings.Contains(got, a.line) {
				count++
			}
		}
		assert.Equal(t, 1, count, "%q should carry exactly one advisory", tt.condition)
	}

	for _, a := range advisories {
		assert.NotContains(t, Suggest(12, "Sunny"), a.line)
	}
}

func TestSuggest_Examples(t *testing.T) {
	got := Suggest(5.0, "light rain")
	assert.Equal(t, strings.Join([]string{
		"🧥 Top: long-sleeve shirt + sweater + jacket",
		"👖 Bottom: long trousers",
		"🧣 Accessories: scarf, hat",
		"☔ Heads-up: bring an umbrella or wear a waterproof jacket",
		"👟 Shoes: comfortable sneakers or casual shoes",
	}, "\n"), got)

	got = Suggest(30.0, "sunny")
	assert.Equal(t, strings.Join([]string{
		"👕 Top: short-sleeve T-shirt or thin shirt",
		"🩳 Bottom: shorts or thin trousers",
		"🧴 Note: sun protection and staying hydrated",
		"👟 Shoes: breathable sneakers or sandals",
	}, "\n"), got)
}

func TestRuleBook_Recommend(t *testing.T) {
	text, err := NewRuleBook().Recommend(context.Background(), Conditions{City: "Oslo", TempC: -5, Condition: "Snow"})
	require.NoError(t, err)
	assert.Equal(t, Suggest(-5, "Snow"), text)
}
