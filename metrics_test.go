package beresheet

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestMetrics(t *testing.T) {
	m, err := NewMetrics(noop.Meter{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = NewMetrics(nil); err != nil {
		t.Fatalf("global meter: %s", err)
	}
	o, _ := land(t, weak, State{Altitude: 1, Fuel: 100, VSpeed: -1}, WithMetrics(m))
	if o != Success {
		t.Fatalf("metrics changed the landing: %s", o)
	}
	// Nil metrics are ignored.
	var none *Metrics
	none.tick(context.Background())
	none.landed(context.Background(), o, State{})
}
