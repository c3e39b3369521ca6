// Package advisor runs the clothing advice workflow: validate the city,
// fetch its weather, generate a suggestion and format the reply. Stages run
// in a fixed order; after the first failure the remaining stages are skipped
// and the formatter renders the error instead.
package advisor

import (
	"context"
	"fmt"

	"github.com/rahul/weatherwear/internal/observability"
	"github.com/rahul/weatherwear/internal/wardrobe"
)

type Pipeline struct {
	stages []Stage
	logger *observability.Logger
}

func NewPipeline(source WeatherSource, recommender wardrobe.Recommender, logger *observability.Logger) *Pipeline {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Pipeline{
		stages: []Stage{
			{Name: StageValidate, Run: Validate},
			{Name: StageFetch, Run: Fetch(source)},
			{Name: StageRecommend, Run: Recommend(recommender)},
		},
		logger: logger,
	}
}

// Stages returns the stage names in execution order, formatter last.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages)+1)
	for _, s := range p.stages {
		names = append(names, s.Name)
	}
	return append(names, StageFormat)
}

// Run executes every stage against a fresh record and returns it with Final
// set. It never fails: stage errors end up in Record.Err.
func (p *Pipeline) Run(ctx context.Context, input string) Record {
	rec := NewRecord(input)

	for _, stage := range p.stages {
		if rec.Failed() {
			p.logger.LogStage(rec.City, stage.Name, "skipped")
			continue
		}

		next, err := p.runStage(ctx, stage, rec)
		if err != nil {
			rec.Err = err
			p.logger.LogError(rec.City, stage.Name, err)
			continue
		}
		rec = next
		p.logger.LogStage(rec.City, stage.Name, "ok")

		if stage.Name == StageFetch {
			p.logger.LogWeather(rec.City, rec.TempC, rec.Condition, rec.Humidity, rec.WindKph)
		}
	}

	rec.Final = Format(rec)
	p.logger.LogStage(rec.City, StageFormat, "ok")
	return rec
}

// Advise runs the pipeline and returns only the rendered text.
func (p *Pipeline) Advise(ctx context.Context, input string) string {
	return p.Run(ctx, input).Final
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, rec Record) (next Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = rec
			err = newStageError(stage.Name, ErrInternal, "stage "+stage.Name+" panicked", fmt.Errorf("%v", r))
		}
	}()

	next, err = stage.Run(ctx, rec)
	if err != nil {
		return rec, err
	}
	// a stage may not clear an error it was handed
	next.Err = rec.Err
	return next, nil
}
