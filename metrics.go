package beresheet

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/RachelAvrunin/Beresheet"

// Metrics counts simulated ticks and landing outcomes.
type Metrics struct {
	ticks    metric.Int64Counter
	outcomes metric.Int64Counter
	fuel     metric.Float64Histogram
}

// NewMetrics creates the instruments on the provided meter, or on the global meter provider if nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	ticks, err := meter.Int64Counter("beresheet.ticks",
		metric.WithDescription("Number of simulated ticks"),
		metric.WithUnit("{tick}"))
	if err != nil {
		return nil, err
	}
	outcomes, err := meter.Int64Counter("beresheet.landings",
		metric.WithDescription("Number of landings by outcome"),
		metric.WithUnit("{landing}"))
	if err != nil {
		return nil, err
	}
	fuel, err := meter.Float64Histogram("beresheet.fuel_left",
		metric.WithDescription("Fuel left at the end of a landing"))
	if err != nil {
		return nil, err
	}
	return &Metrics{ticks, outcomes, fuel}, nil
}

func (m *Metrics) tick(ctx context.Context) {
	if m == nil {
		return
	}
	m.ticks.Add(ctx, 1)
}

func (m *Metrics) landed(ctx context.Context, o Outcome, s State) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", o.String()))
	m.outcomes.Add(ctx, 1, attrs)
	m.fuel.Record(ctx, s.Fuel, attrs)
}
