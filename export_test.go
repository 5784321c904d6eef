package beresheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func testSnapshot() Snapshot {
	s := State{Time: 5, Altitude: 29987.5, VSpeed: -4.05, VAcc: -0.4, HSpeed: 1691.6, HAcc: -1.68, Fuel: 208.89,
		Angle: 89.99, AngSpeed: -0.05, AngAcc: -0.0097}
	return NewSnapshot(s, Beresheet, DefaultStart)
}

func TestSnapshotFormat(t *testing.T) {
	s := testSnapshot()
	if !scalar.EqualWithinAbs(s.Weight, 373.89, 1e-9) {
		t.Fatalf("weight = %f", s.Weight)
	}
	if !s.DT.Equal(DefaultStart.Add(5 * time.Second)) {
		t.Fatalf("DT = %s", s.DT)
	}
	if exp := "5,29987.50,-4.05,-0.40,1691.60,-1.68,208.89,373.89,89.99,-0.05,-0.010"; s.CSV() != exp {
		t.Fatalf("CSV:\n%s\n%s", s.CSV(), exp)
	}
	fields := strings.Split(s.String(), "\t")
	if len(fields) != len(strings.Split(csvHeader, ",")) {
		t.Fatalf("%d console fields: %q", len(fields), s.String())
	}
	if strings.TrimSpace(fields[0]) != "5s" || strings.TrimSpace(fields[1]) != "29987.50" || strings.TrimSpace(fields[10]) != "-0.010" {
		t.Fatalf("unexpected console line %q", s.String())
	}
}

func TestSnapshotJDE(t *testing.T) {
	s := Snapshot{DT: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)}
	if !scalar.EqualWithinAbs(s.JDE(), 2451545, 1e-6) {
		t.Fatalf("JDE = %f", s.JDE())
	}
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.Report(Header)
	r.Report(testSnapshot().String())
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 2 || lines[0] != Header {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	if err := os.WriteFile(path, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}
	j := Journal{path}
	for _, line := range []string{"a", "b"} {
		if err := j.Append(line); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous run\na\nb\n" {
		t.Fatalf("journal truncated or malformed: %q", data)
	}
	bad := Journal{filepath.Join(t.TempDir(), "missing", "output.csv")}
	if err := bad.Append("a"); err == nil {
		t.Fatal("expected an error writing to a missing directory")
	}
}

func TestCSVRecorder(t *testing.T) {
	dir := t.TempDir()
	r := NewCSVRecorder(ExportConfig{OutputDir: dir, Filename: "landing", AsCSV: true}, DefaultStart)
	if r.Path != filepath.Join(dir, "landing.csv") {
		t.Fatalf("path = %s", r.Path)
	}
	s := testSnapshot()
	for i := 0; i < 2; i++ {
		if err := r.Record(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Finish(CrashAngle); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("%d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "# Creation date") || lines[2] != csvHeader || lines[3] != s.CSV() || lines[4] != s.CSV() {
		t.Fatalf("unexpected file:\n%s", data)
	}
	if lines[5] != "# Outcome: crash-angle" {
		t.Fatalf("unexpected outcome line %q", lines[5])
	}
	if def := NewCSVRecorder(ExportConfig{AsCSV: true}, DefaultStart); def.Path != "output.csv" {
		t.Fatalf("default path = %s", def.Path)
	}
}

func TestExportConfig(t *testing.T) {
	if !(ExportConfig{Filename: "x", Timestamp: true}).IsUseless() {
		t.Fatal("no export enabled")
	}
	for _, c := range []ExportConfig{
		{AsCSV: true}, {SQLite: ":memory:"}, {Postgres: "host=localhost"}, {Influx: InfluxConfig{URL: "http://localhost:8086"}},
	} {
		if c.IsUseless() {
			t.Fatalf("%+v is useful", c)
		}
	}
}
