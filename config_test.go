package beresheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadScenarioDefaults(t *testing.T) {
	sc, err := LoadScenario("")
	if err != nil {
		t.Fatal(err)
	}
	if sc.Body != Moon {
		t.Fatalf("body = %+v", sc.Body)
	}
	if sc.Vehicle != Beresheet {
		t.Fatalf("vehicle = %+v", sc.Vehicle)
	}
	if sc.Initial != InitialState(Moon) {
		t.Fatalf("initial = %+v", sc.Initial)
	}
	if !sc.Start.Equal(DefaultStart) || sc.Pace != 0 || sc.ReportEvery != ReportEvery {
		t.Fatalf("mission = %s, %s, %d", sc.Start, sc.Pace, sc.ReportEvery)
	}
	if !sc.Export.AsCSV || sc.Export.Filename != "output" || sc.Export.SQLite != "" {
		t.Fatalf("export = %+v", sc.Export)
	}
}

const testScenario = `
[mission]
name = "low"
start = "2020-01-01T00:00:00Z"
pace = "2ms"
report_every = 10

[vehicle]
dry = 200
side_count = 4

[initial]
altitude = 1000
v_speed = -20
angle = 0

[export]
csv = false
sqlite = ":memory:"

[export.influx]
url = "http://localhost:8086"
bucket = "landings"
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "low.toml")
	if err := os.WriteFile(path, []byte(testScenario), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BERESHEET_INITIAL_FUEL", "50")
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "low" || sc.ReportEvery != 10 || sc.Pace != 2*time.Millisecond {
		t.Fatalf("mission = %+v", sc)
	}
	if !sc.Start.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %s", sc.Start)
	}
	if sc.Vehicle.DryMass != 200 || sc.Vehicle.SideCount != 4 || sc.Vehicle.Radius != Beresheet.Radius {
		t.Fatalf("vehicle = %+v", sc.Vehicle)
	}
	if sc.Initial.Altitude != 1000 || sc.Initial.VSpeed != -20 || sc.Initial.Angle != 0 || sc.Initial.HSpeed != Moon.EquatorialSpeed {
		t.Fatalf("initial = %+v", sc.Initial)
	}
	if sc.Initial.Fuel != 50 {
		t.Fatalf("environment override ignored: fuel = %f", sc.Initial.Fuel)
	}
	if sc.Export.AsCSV || sc.Export.SQLite != ":memory:" || sc.Export.Influx.Bucket != "landings" {
		t.Fatalf("export = %+v", sc.Export)
	}
	if len(sc.Options()) != 3 {
		t.Fatal("unexpected options")
	}
	m, err := NewMission(sc.Body, sc.Vehicle, sc.Initial, sc.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if m.every != 10 || m.pace != 2*time.Millisecond || !m.StartDT.Equal(sc.Start) {
		t.Fatalf("options not applied: %d %s %s", m.every, m.pace, m.StartDT)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing scenario")
	}
	path := filepath.Join(t.TempDir(), "mars.toml")
	if err := os.WriteFile(path, []byte("[body]\nname = \"mars\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("expected ErrUnknownBody, got %v", err)
	}
}
