package beresheet

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Scenario is everything needed to run one landing.
type Scenario struct {
	Name        string
	Body        CelestialBody
	Vehicle     Vehicle
	Initial     State
	Start       time.Time
	Pace        time.Duration
	ReportEvery int
	Export      ExportConfig
}

// Options returns the mission options of this scenario.
func (s Scenario) Options() []Option {
	return []Option{WithStart(s.Start), WithPace(s.Pace), WithReportEvery(s.ReportEvery)}
}

// LoadScenario reads the scenario TOML file at path. Every value defaults to Beresheet's landing
// on the Moon and may be overridden by an environment variable, e.g. BERESHEET_INITIAL_ALTITUDE.
// An empty path only uses the defaults and the environment.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetEnvPrefix("beresheet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mission.name", "beresheet")
	v.SetDefault("mission.start", DefaultStart)
	v.SetDefault("mission.pace", time.Duration(0))
	v.SetDefault("mission.report_every", ReportEvery)
	v.SetDefault("body.name", Moon.Name)
	v.SetDefault("export.output_path", ".")
	v.SetDefault("export.filename", "output")
	v.SetDefault("export.csv", true)
	setVehicleDefaults(v, Beresheet)

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return Scenario{}, fmt.Errorf("could not read scenario %s: %w", path, err)
		}
	}

	// The body defaults depend on which body was picked.
	body, err := CelestialBodyFromString(v.GetString("body.name"))
	if err != nil {
		return Scenario{}, err
	}
	v.SetDefault("body.mass", body.Mass)
	v.SetDefault("body.radius", body.Radius)
	v.SetDefault("body.gravity", body.Gravity)
	v.SetDefault("body.equatorial_speed", body.EquatorialSpeed)
	v.SetDefault("body.orbital_speed", body.OrbitalSpeed)
	body = CelestialBody{
		Name:            body.Name,
		Mass:            v.GetFloat64("body.mass"),
		Radius:          v.GetFloat64("body.radius"),
		Gravity:         v.GetFloat64("body.gravity"),
		EquatorialSpeed: v.GetFloat64("body.equatorial_speed"),
		OrbitalSpeed:    v.GetFloat64("body.orbital_speed"),
	}

	initial := InitialState(body)
	v.SetDefault("initial.altitude", initial.Altitude)
	v.SetDefault("initial.fuel", initial.Fuel)
	v.SetDefault("initial.v_speed", initial.VSpeed)
	v.SetDefault("initial.h_speed", initial.HSpeed)
	v.SetDefault("initial.angle", initial.Angle)
	v.SetDefault("initial.ang_speed", initial.AngSpeed)

	return Scenario{
		Name: v.GetString("mission.name"),
		Body: body,
		Vehicle: Vehicle{
			Name:      v.GetString("vehicle.name"),
			DryMass:   v.GetFloat64("vehicle.dry"),
			Radius:    v.GetFloat64("vehicle.radius"),
			Main:      NewEngine(v.GetFloat64("vehicle.main_thrust"), v.GetFloat64("vehicle.main_burn")),
			Side:      NewEngine(v.GetFloat64("vehicle.side_thrust"), v.GetFloat64("vehicle.side_burn")),
			SideCount: v.GetFloat64("vehicle.side_count"),
		},
		Initial: State{
			Altitude: v.GetFloat64("initial.altitude"),
			Fuel:     v.GetFloat64("initial.fuel"),
			VSpeed:   v.GetFloat64("initial.v_speed"),
			HSpeed:   v.GetFloat64("initial.h_speed"),
			Angle:    v.GetFloat64("initial.angle"),
			AngSpeed: v.GetFloat64("initial.ang_speed"),
		},
		Start:       v.GetTime("mission.start").UTC(),
		Pace:        v.GetDuration("mission.pace"),
		ReportEvery: v.GetInt("mission.report_every"),
		Export: ExportConfig{
			OutputDir: v.GetString("export.output_path"),
			Filename:  v.GetString("export.filename"),
			AsCSV:     v.GetBool("export.csv"),
			Timestamp: v.GetBool("export.timestamp"),
			SQLite:    v.GetString("export.sqlite"),
			Postgres:  v.GetString("export.postgres"),
			Influx: InfluxConfig{
				URL:    v.GetString("export.influx.url"),
				Token:  v.GetString("export.influx.token"),
				Org:    v.GetString("export.influx.org"),
				Bucket: v.GetString("export.influx.bucket"),
			},
		},
	}, nil
}

func setVehicleDefaults(v *viper.Viper, vehicle Vehicle) {
	v.SetDefault("vehicle.name", vehicle.Name)
	v.SetDefault("vehicle.dry", vehicle.DryMass)
	v.SetDefault("vehicle.radius", vehicle.Radius)
	v.SetDefault("vehicle.main_thrust", vehicle.Main.Thrust())
	v.SetDefault("vehicle.main_burn", vehicle.Main.BurnRate())
	v.SetDefault("vehicle.side_thrust", vehicle.Side.Thrust())
	v.SetDefault("vehicle.side_burn", vehicle.Side.BurnRate())
	v.SetDefault("vehicle.side_count", vehicle.SideCount)
}
