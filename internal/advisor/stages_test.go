package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Berlin", "Berlin"},
		{"  New York  ", "New York"},
		{"São Paulo", "São Paulo"},
		{"Winston-Salem", "Winston-Salem"},
		{"北京", "北京"},
		{"<Tokyo>", "Tokyo"},
		{"St. Louis", "St Louis"},
		{"Rio!!", "Rio"},
		{"ab", "ab"},
		{"x_y", "x_y"},
		{"! Oslo ?", "Oslo"},
	}

	for _, tt := range tests {
		got, err := NormalizeCity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeCity_Errors(t *testing.T) {
	_, err := NormalizeCity("   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, msgEmptyCity)

	_, err = NormalizeCity("?")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, msgInvalidCity)

	_, err = NormalizeCity("a.")
	assert.EqualError(t, err, msgInvalidCity)

	_, err = NormalizeCity("京")
	assert.EqualError(t, err, msgInvalidCity)
}

func TestStagesNoopOnError(t *testing.T) {
	cause := errors.New("earlier")
	in := Record{Input: "Berlin", Err: cause}

	out, err := Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out, err = Fetch(&fakeSource{})(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	rc := &countingRecommender{text: "x"}
	out, err = Recommend(rc)(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Zero(t, rc.calls)
}

func TestStageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := newStageError(StageFetch, ErrNetwork, msgFetchFailed, cause)

	assert.Equal(t, "failed to fetch weather data: connection reset", err.Error())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestFormat(t *testing.T) {
	rec := Record{City: "Rome", TempC: 30, Condition: "sunny", Suggestion: "Shorts"}
	out := Format(rec)
	assert.Contains(t, out, "🌍 Clothing advice for Rome")
	assert.Contains(t, out, "• Temperature: 30.0°C")
	assert.Contains(t, out, "• Condition: sunny")
	assert.Contains(t, out, "👔 What to wear:\nShorts\n")

	rec.Err = newStageError(StageValidate, ErrValidation, msgEmptyCity, nil)
	assert.Equal(t, "❌ Error: city name must not be empty", Format(rec))
}

func TestFormat_TemperatureKeepsPrecision(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{5, "5.0"},
		{-2, "-2.0"},
		{0, "0.0"},
		{12.25, "12.25"},
		{18.3, "18.3"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out := Format(Record{City: "Rome", TempC: tt.temp, Condition: "sunny", Suggestion: "Shorts"})
			assert.Contains(t, out, "• Temperature: "+tt.want+"°C\n")
		})
	}
}
