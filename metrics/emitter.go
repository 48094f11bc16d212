package metrics // import "code.cloudfoundry.org/grootrun/metrics"

import (
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/cloudfoundry/dropsonde"
	"github.com/cloudfoundry/dropsonde/metrics"
)

const dropsondeOrigin = "grootrun"

type Emitter struct {
}

func NewEmitter(metronEndpoint string) (*Emitter, error) {
	if err := dropsonde.Initialize(metronEndpoint, dropsondeOrigin); err != nil {
		return nil, err
	}

	return &Emitter{}, nil
}

func (e *Emitter) EmitDuration(name string, duration time.Duration) error {
	return metrics.SendValue(name, float64(duration), "nanos")
}

// TryEmitDuration only logs send failures: metrics never fail a run.
func (e *Emitter) TryEmitDuration(logger lager.Logger, name string, duration time.Duration) {
	if err := e.EmitDuration(name, duration); err != nil {
		logger.Error("failed-to-emit-metric", err, lager.Data{
			"name":     name,
			"duration": duration,
		})
	}
}

func (e *Emitter) TryEmitDurationFrom(logger lager.Logger, name string, from time.Time) {
	e.TryEmitDuration(logger, name, time.Since(from))
}

type NoopEmitter struct{}

func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

func (NoopEmitter) TryEmitDuration(lager.Logger, string, time.Duration) {}

func (NoopEmitter) TryEmitDurationFrom(lager.Logger, string, time.Time) {}
