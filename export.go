package beresheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// Header is the console header matching Snapshot.String.
	Header = "Time\tAlt\t\tV-Speed\t\tV-Acc\t\tH-Speed\t\tH-Acc\t\tFuel\tWeight\tAngle\tA-Speed\tA-Acc"
	// csvHeader is the column header matching Snapshot.CSV.
	csvHeader = "time,altitude,vSpeed,vAcc,hSpeed,hAcc,fuel,weight,angle,angSpeed,angAcc"
)

// Snapshot is a State as reported and recorded, with the derived weight and its epoch.
type Snapshot struct {
	State
	Weight float64
	DT     time.Time
}

// NewSnapshot returns the snapshot of the provided state, timestamped from the landing start.
func NewSnapshot(s State, v Vehicle, start time.Time) Snapshot {
	return Snapshot{s, s.Weight(v), start.Add(time.Duration(s.Time) * time.Second)}
}

// JDE returns the Julian date of this snapshot.
func (s Snapshot) JDE() float64 {
	return julian.TimeToJD(s.DT)
}

// String implements the Stringer interface and is the line shown on the console.
func (s Snapshot) String() string {
	return fmt.Sprintf("%4ds\t%9.2f\t%5.2fm/s\t%5.2fm/s²\t%7.2fm/s\t%5.2fm/s²\t%.2f\t%.2f\t%5.2f°\t%5.2f\t%6.3f",
		s.Time, s.Altitude, s.VSpeed, s.VAcc, s.HSpeed, s.HAcc, s.Fuel, s.Weight, s.Angle, s.AngSpeed, s.AngAcc)
}

// CSV returns this snapshot as one journal record (without trailing newline).
func (s Snapshot) CSV() string {
	return fmt.Sprintf("%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.3f",
		s.Time, s.Altitude, s.VSpeed, s.VAcc, s.HSpeed, s.HAcc, s.Fuel, s.Weight, s.Angle, s.AngSpeed, s.AngAcc)
}

// Reporter shows snapshots and messages to a human.
type Reporter interface {
	Report(line string)
}

// ConsoleReporter writes each report on its own line.
type ConsoleReporter struct {
	w io.Writer
}

// Report implements the Reporter interface. Write errors are dropped.
func (r ConsoleReporter) Report(line string) {
	fmt.Fprintln(r.w, line)
}

// NewConsoleReporter returns a reporter writing to w.
func NewConsoleReporter(w io.Writer) ConsoleReporter {
	return ConsoleReporter{w}
}

// Recorder persists the snapshots streamed out of a landing.
type Recorder interface {
	// Record persists one snapshot.
	Record(s Snapshot) error
	// Finish is called once, after the last snapshot, with the outcome of the landing.
	Finish(o Outcome) error
}

// Journal is an append only text file.
type Journal struct {
	Path string
}

// Append writes the line and a new line at the end of the journal, creating it if needed.
func (j Journal) Append(line string) error {
	f, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err = f.WriteString(line + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CSVRecorder records snapshots as CSV records in a journal.
type CSVRecorder struct {
	Journal
	start   time.Time
	started bool
}

// NewCSVRecorder returns a recorder writing to the CSV file set in the export configuration.
func NewCSVRecorder(conf ExportConfig, start time.Time) *CSVRecorder {
	filename := conf.Filename
	if filename == "" {
		filename = "output"
	}
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return &CSVRecorder{Journal: Journal{filepath.Join(conf.OutputDir, filename+".csv")}, start: start}
}

// Record implements the Recorder interface.
func (r *CSVRecorder) Record(s Snapshot) error {
	if !r.started {
		hdr := fmt.Sprintf("# Creation date (UTC): %s\n# Simulation time start (UTC): %s\n%s", time.Now().UTC(), r.start.UTC(), csvHeader)
		if err := r.Append(hdr); err != nil {
			return err
		}
		r.started = true
	}
	return r.Append(s.CSV())
}

// Finish implements the Recorder interface.
func (r *CSVRecorder) Finish(o Outcome) error {
	return r.Append("# Outcome: " + o.String())
}

// ExportConfig configures the exporting of the landing.
type ExportConfig struct {
	OutputDir string
	Filename  string
	AsCSV     bool
	Timestamp bool
	SQLite    string // Database file, ":memory:" for an in-memory database
	Postgres  string // DSN
	Influx    InfluxConfig
}

// InfluxConfig configures the InfluxDB export.
type InfluxConfig struct {
	URL, Token, Org, Bucket string
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && c.SQLite == "" && c.Postgres == "" && c.Influx.URL == ""
}
