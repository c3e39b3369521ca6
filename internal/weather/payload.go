package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// wttr.in j1 format, reduced to the fields we read.
type payload struct {
	CurrentCondition []struct {
		TempC         flexNumber `json:"temp_C"`
		Humidity      flexNumber `json:"humidity"`
		WindspeedKmph flexNumber `json:"windspeedKmph"`
		WeatherDesc   []struct {
			Value *string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// flexNumber accepts both "12" and 12; wttr.in quotes its numbers.
type flexNumber struct {
	raw string
	set bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw, n.set = strings.TrimSpace(s), true
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	n.raw, n.set = num.String(), true
	return nil
}

func (n flexNumber) asFloat(field string) (float64, error) {
	if !n.set || n.raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, field)
	}
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformed, field, n.raw)
	}
	return v, nil
}

func (n flexNumber) asInt(field string) (int, error) {
	if !n.set || n.raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, field)
	}
	v, err := strconv.Atoi(n.raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformed, field, n.raw)
	}
	return v, nil
}

// Parse extracts the current conditions from a j1 response body.
func Parse(body []byte) (Conditions, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(p.CurrentCondition) == 0 {
		return Conditions{}, fmt.Errorf("%w: missing current_condition", ErrMalformed)
	}
	cur := p.CurrentCondition[0]

	temp, err := cur.TempC.asFloat("temp_C")
	if err != nil {
		return Conditions{}, err
	}
	if len(cur.WeatherDesc) == 0 {
		return Conditions{}, fmt.Errorf("%w: missing weatherDesc", ErrMalformed)
	}
	desc := cur.WeatherDesc[0].Value
	if desc == nil || strings.TrimSpace(*desc) == "" {
		return Conditions{}, fmt.Errorf("%w: missing weatherDesc value", ErrMalformed)
	}
	humidity, err := cur.Humidity.asInt("humidity")
	if err != nil {
		return Conditions{}, err
	}
	wind, err := cur.WindspeedKmph.asFloat("windspeedKmph")
	if err != nil {
		return Conditions{}, err
	}

	return Conditions{
		TempC:       temp,
		Description: strings.TrimSpace(*desc),
		Humidity:    humidity,
		WindKph:     wind,
		Raw:         json.RawMessage(append([]byte(nil), body...)),
	}, nil
}
