package advisor

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rahul/weatherwear/internal/wardrobe"
	"github.com/rahul/weatherwear/internal/weather"
)

const (
	StageValidate  = "validate_input"
	StageFetch     = "fetch_weather"
	StageRecommend = "generate_suggestion"
	StageFormat    = "format_response"
)

const (
	msgEmptyCity     = "city name must not be empty"
	msgInvalidCity   = "please enter a valid city name"
	msgFetchFailed   = "failed to fetch weather data"
	msgParseFailed   = "failed to parse weather data"
	msgSuggestFailed = "failed to generate clothing suggestion"
)

// Anything that is not a letter, mark, digit, underscore, space or hyphen.
var disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}-]`)

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, rec Record) (Record, error)
}

// WeatherSource looks up the current weather for a city.
type WeatherSource interface {
	Current(ctx context.Context, city string) (weather.Conditions, error)
}

// NormalizeCity trims input, drops disallowed characters and checks that at
// least two characters remain.
func NormalizeCity(input string) (string, error) {
	city := strings.TrimSpace(input)
	if city == "" {
		return "", newStageError(StageValidate, ErrValidation, msgEmptyCity, nil)
	}

	city = strings.TrimSpace(disallowed.ReplaceAllString(city, ""))
	if utf8.RuneCountInString(city) < 2 {
		return "", newStageError(StageValidate, ErrValidation, msgInvalidCity, nil)
	}
	return city, nil
}

// Validate sets Record.City from Record.Input.
func Validate(_ context.Context, rec Record) (Record, error) {
	if rec.Failed() {
		return rec, nil
	}
	city, err := NormalizeCity(rec.Input)
	if err != nil {
		return rec, err
	}
	rec.City = city
	return rec, nil
}

// Fetch returns a stage that fills the weather fields from source.
func Fetch(source WeatherSource) func(context.Context, Record) (Record, error) {
	return func(ctx context.Context, rec Record) (Record, error) {
		if rec.Failed() {
			return rec, nil
		}

		cond, err := source.Current(ctx, rec.City)
		if err != nil {
			if errors.Is(err, weather.ErrMalformed) {
				return rec, newStageError(StageFetch, ErrParse, msgParseFailed, err)
			}
			return rec, newStageError(StageFetch, ErrNetwork, msgFetchFailed, err)
		}

		rec.Payload = cond.Raw
		rec.TempC = cond.TempC
		rec.Condition = cond.Description
		rec.Humidity = cond.Humidity
		rec.WindKph = cond.WindKph
		return rec, nil
	}
}

// Recommend returns a stage that fills Record.Suggestion from r.
func Recommend(r wardrobe.Recommender) func(context.Context, Record) (Record, error) {
	return func(ctx context.Context, rec Record) (Record, error) {
		if rec.Failed() {
			return rec, nil
		}

		text, err := r.Recommend(ctx, wardrobe.Conditions{
			City:      rec.City,
			TempC:     rec.TempC,
			Condition: rec.Condition,
		})
		if err != nil {
			return rec, newStageError(StageRecommend, ErrGeneration, msgSuggestFailed, err)
		}
		rec.Suggestion = text
		return rec, nil
	}
}
