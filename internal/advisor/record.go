package advisor

import "encoding/json"

// Record is the value threaded through the pipeline. Stages receive a copy
// and return the next one; a stage that fails leaves the previous record in
// place.
type Record struct {
	Input      string
	City       string
	Payload    json.RawMessage
	TempC      float64
	Condition  string
	Humidity   int
	WindKph    float64
	Suggestion string
	Final      string

	// Err is set by the first failing stage and never cleared.
	Err error
}

func NewRecord(input string) Record {
	return Record{Input: input}
}

// Failed reports whether any stage has recorded an error.
func (r Record) Failed() bool {
	return r.Err != nil
}
