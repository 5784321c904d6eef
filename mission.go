package beresheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
)

const (
	// StepSize is the fixed time step of the landing.
	StepSize = time.Second
	// ReportEvery is the default number of simulated seconds between two reported snapshots.
	ReportEvery = 5
)

// ErrMissionOver is returned when landing a mission which already ran.
var ErrMissionOver = errors.New("beresheet: mission already ran")

// DefaultStart is the epoch of Beresheet's landing maneuver.
var DefaultStart = time.Date(2019, 4, 11, 19, 0, 0, 0, time.UTC)

/* Handles the landing maneuver. */

// Mission defines a landing and runs it. A Mission owns its State and runs at most once.
type Mission struct {
	Body    CelestialBody
	Vehicle Vehicle
	State   State
	StartDT time.Time

	reporter  Reporter
	recorders []Recorder
	logger    kitlog.Logger
	metrics   *Metrics
	pace      time.Duration
	every     int

	histChan chan Snapshot
	wg       sync.WaitGroup
	outcome  Outcome
	landed   bool
	ran      bool
}

// Option configures a Mission.
type Option func(*Mission)

// WithReporter sets who is shown the snapshots and the final message.
func WithReporter(r Reporter) Option {
	return func(m *Mission) {
		m.reporter = r
	}
}

// WithRecorders adds recorders to which every reported snapshot is streamed.
func WithRecorders(r ...Recorder) Option {
	return func(m *Mission) {
		m.recorders = append(m.recorders, r...)
	}
}

// WithLogger sets the logger.
func WithLogger(l kitlog.Logger) Option {
	return func(m *Mission) {
		m.logger = l
	}
}

// WithMetrics sets the metrics instruments.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Mission) {
		m.metrics = metrics
	}
}

// WithPace sets the wall clock delay between two ticks. It does not change the simulated values.
func WithPace(d time.Duration) Option {
	return func(m *Mission) {
		m.pace = d
	}
}

// WithReportEvery sets the number of simulated seconds between two snapshots.
func WithReportEvery(seconds int) Option {
	return func(m *Mission) {
		if seconds > 0 {
			m.every = seconds
		}
	}
}

// WithStart sets the epoch of the start of the landing.
func WithStart(dt time.Time) Option {
	return func(m *Mission) {
		m.StartDT = dt.UTC()
	}
}

type nopReporter struct{}

func (nopReporter) Report(string) {}

// NewMission returns a landing of the vehicle on the body from the provided initial state.
func NewMission(body CelestialBody, v Vehicle, initial State, opts ...Option) (*Mission, error) {
	if err := body.Validate(); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	m := &Mission{
		Body:     body,
		Vehicle:  v,
		State:    initial,
		StartDT:  DefaultStart,
		reporter: nopReporter{},
		logger:   kitlog.NewNopLogger(),
		every:    ReportEvery,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Stop returns whether the landing is over, i.e. the fuel is exhausted or the ground was reached.
func (m *Mission) Stop() bool {
	return m.State.Fuel <= 0 || m.State.Altitude <= 0
}

// Land runs the landing until it is over and returns its outcome.
// It returns an error only if the context is done before the landing is over, in which case
// no outcome is produced.
func (m *Mission) Land(ctx context.Context) (Outcome, error) {
	if m.ran {
		return m.outcome, ErrMissionOver
	}
	m.ran = true
	m.startStreaming()

	m.reporter.Report(Header)
	m.emit()
	m.logger.Log("level", "info", "subsys", "landing", "status", "started", "body", m.Body.Name, "vehicle", m.Vehicle.Name,
		"altitude(m)", m.State.Altitude, "fuel", m.State.Fuel, "hSpeed(m/s)", m.State.HSpeed)

	dt := StepSize.Seconds()
	for !m.Stop() {
		if err := m.wait(ctx); err != nil {
			m.logger.Log("level", "warning", "subsys", "landing", "status", "canceled", "time(s)", m.State.Time, "altitude(m)", m.State.Altitude, "err", err)
			m.stopStreaming()
			return m.outcome, fmt.Errorf("landing canceled at %ds: %w", m.State.Time, err)
		}
		m.State.Time += int(dt)
		if m.State.Time%m.every == 0 {
			m.emit()
		}
		hadFuel := m.State.Fuel > 0
		m.State = Tick(m.State, m.Body, m.Vehicle, dt)
		m.metrics.tick(ctx)
		if hadFuel && m.State.Fuel <= 0 {
			m.logger.Log("level", "critical", "subsys", "prop", "time(s)", m.State.Time, "fuel", m.State.Fuel)
		}
	}

	m.emit()
	m.outcome = Classify(m.State)
	m.landed = true
	m.reporter.Report(m.outcome.Message())
	m.logger.Log("level", "notice", "subsys", "landing", "status", "finished", "outcome", m.outcome, "duration", time.Duration(m.State.Time)*time.Second,
		"vSpeed(m/s)", m.State.VSpeed, "angle(deg)", m.State.Angle, "fuel", m.State.Fuel)
	m.metrics.landed(ctx, m.outcome, m.State)
	m.stopStreaming()
	return m.outcome, nil
}

// wait returns the context's error if it is done, after waiting for the pace if any.
func (m *Mission) wait(ctx context.Context) error {
	if m.pace <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.pace):
		return nil
	}
}

// emit reports the current state and streams it to the recorders.
func (m *Mission) emit() {
	snapshot := NewSnapshot(m.State, m.Vehicle, m.StartDT)
	m.reporter.Report(snapshot.String())
	if m.histChan != nil {
		m.histChan <- snapshot
	}
}

func (m *Mission) startStreaming() {
	if len(m.recorders) == 0 {
		return
	}
	m.histChan = make(chan Snapshot, 1000) // a 1k entry buffer
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.streamStates()
	}()
}

// stopStreaming closes the stream and does not return until all the recorders are done.
func (m *Mission) stopStreaming() {
	if m.histChan == nil {
		return
	}
	close(m.histChan)
	m.wg.Wait()
}

// streamStates writes every streamed snapshot to the recorders. Errors are logged and do not stop the landing.
// A recorder which failed is not called again.
func (m *Mission) streamStates() {
	failed := make([]bool, len(m.recorders))
	for snapshot := range m.histChan {
		for i, r := range m.recorders {
			if failed[i] {
				continue
			}
			if err := r.Record(snapshot); err != nil {
				failed[i] = true
				m.logger.Log("level", "warning", "subsys", "export", "recorder", fmt.Sprintf("%T", r), "time(s)", snapshot.Time, "err", err)
			}
		}
	}
	if !m.landed {
		return
	}
	for i, r := range m.recorders {
		if failed[i] {
			continue
		}
		if err := r.Finish(m.outcome); err != nil {
			m.logger.Log("level", "warning", "subsys", "export", "recorder", fmt.Sprintf("%T", r), "err", err)
		}
	}
}

// Outcome returns the outcome of the landing and whether it is over.
func (m *Mission) Outcome() (Outcome, bool) {
	return m.outcome, m.landed
}
