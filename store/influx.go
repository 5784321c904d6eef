package store

import (
	"errors"
	"sync"
	"time"

	beresheet "github.com/RachelAvrunin/Beresheet"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const (
	measurement        = "landing"
	outcomeMeasurement = "landing_outcome"
	backlog            = 1024
)

// ErrInfluxBacklog is returned when the points are produced faster than the server takes them.
var ErrInfluxBacklog = errors.New("store: influx backlog is full")

// InfluxRecorder writes the snapshots of one landing as InfluxDB points.
// Points are queued, batched and sent in the background: recording never waits for the server.
type InfluxRecorder struct {
	client influxdb2.Client
	writer api.WriteAPI
	tags   map[string]string
	last   time.Time
	points chan *write.Point
	done   chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error
}

// NewInfluxRecorder returns a recorder writing to the configured bucket. It does not check the connection.
func NewInfluxRecorder(conf beresheet.InfluxConfig, name string, m *beresheet.Mission) *InfluxRecorder {
	client := influxdb2.NewClientWithOptions(conf.URL, conf.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000).
			SetHTTPRequestTimeout(5).
			SetMaxRetries(0))
	r := &InfluxRecorder{
		client: client,
		writer: client.WriteAPI(conf.Org, conf.Bucket),
		tags:   map[string]string{"mission": name, "body": m.Body.Name, "vehicle": m.Vehicle.Name},
		last:   m.StartDT,
		points: make(chan *write.Point, backlog),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		for p := range r.points {
			r.writer.WritePoint(p)
		}
	}()
	go func(errorsCh <-chan error) {
		for err := range errorsCh {
			r.mu.Lock()
			if r.err == nil {
				r.err = err
			}
			r.mu.Unlock()
		}
	}(r.writer.Errors())
	return r
}

// Err returns the first error the server returned, if any.
func (r *InfluxRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// snapshotPoint returns the point of a snapshot.
func snapshotPoint(tags map[string]string, s beresheet.Snapshot) *write.Point {
	return influxdb2.NewPoint(measurement, tags, map[string]interface{}{
		"time":     s.Time,
		"jde":      s.JDE(),
		"altitude": s.Altitude,
		"vSpeed":   s.VSpeed,
		"vAcc":     s.VAcc,
		"hSpeed":   s.HSpeed,
		"hAcc":     s.HAcc,
		"fuel":     s.Fuel,
		"weight":   s.Weight,
		"angle":    s.Angle,
		"angSpeed": s.AngSpeed,
		"angAcc":   s.AngAcc,
	}, s.DT)
}

// Record implements the beresheet.Recorder interface. It returns the first failure of a previous write.
func (r *InfluxRecorder) Record(s beresheet.Snapshot) error {
	if err := r.Err(); err != nil {
		return err
	}
	r.last = s.DT
	return r.enqueue(snapshotPoint(r.tags, s))
}

// Finish implements the beresheet.Recorder interface.
func (r *InfluxRecorder) Finish(o beresheet.Outcome) error {
	if err := r.Err(); err != nil {
		return err
	}
	return r.enqueue(influxdb2.NewPoint(outcomeMeasurement, r.tags, map[string]interface{}{
		"outcome": o.String(),
		"failed":  o.Failed(),
	}, r.last))
}

func (r *InfluxRecorder) enqueue(p *write.Point) error {
	select {
	case r.points <- p:
		return nil
	default:
		return ErrInfluxBacklog
	}
}

// Close sends the pending points and closes the client. The recorder must not be used afterwards.
func (r *InfluxRecorder) Close() {
	r.once.Do(func() {
		close(r.points)
		<-r.done
		r.client.Close()
	})
}
