package main

import (
	"fmt"
	"os"

	beresheet "github.com/RachelAvrunin/Beresheet"
	"github.com/RachelAvrunin/Beresheet/store"
	kitlog "github.com/go-kit/log"
	"gorm.io/gorm"
)

func fmtState(s beresheet.State) string {
	return fmt.Sprintf("alt=%.1fm fuel=%.1f v=%.1fm/s h=%.1fm/s angle=%.1f°", s.Altitude, s.Fuel, s.VSpeed, s.HSpeed, s.Angle)
}

// setupExports adds the recorders of the scenario to the mission and returns what closes them.
// An export which cannot be set up is logged and skipped: it never prevents the landing.
func setupExports(sc beresheet.Scenario, m *beresheet.Mission, logger kitlog.Logger) func() {
	conf := sc.Export
	var closers []func()
	if conf.IsUseless() {
		return func() {}
	}
	var recorders []beresheet.Recorder
	if conf.AsCSV {
		if err := os.MkdirAll(conf.OutputDir, 0755); err != nil {
			logger.Log("level", "warning", "subsys", "export", "csv", conf.OutputDir, "err", err)
		} else {
			csv := beresheet.NewCSVRecorder(conf, m.StartDT)
			recorders = append(recorders, csv)
			logger.Log("level", "info", "subsys", "export", "csv", csv.Path)
		}
	}
	for _, db := range []struct{ driver, dsn string }{{"sqlite", conf.SQLite}, {"postgres", conf.Postgres}} {
		if db.dsn == "" {
			continue
		}
		if r, gdb, err := gormRecorder(db.driver, db.dsn, sc.Name, m); err != nil {
			logger.Log("level", "warning", "subsys", "export", "driver", db.driver, "err", err)
		} else {
			recorders = append(recorders, r)
			closers = append(closers, func() { store.Close(gdb) })
			logger.Log("level", "info", "subsys", "export", "driver", db.driver, "landing", r.ID())
		}
	}
	if conf.Influx.URL != "" {
		r := store.NewInfluxRecorder(conf.Influx, sc.Name, m)
		recorders = append(recorders, r)
		closers = append(closers, r.Close)
		logger.Log("level", "info", "subsys", "export", "influx", conf.Influx.URL, "bucket", conf.Influx.Bucket)
	}
	beresheet.WithRecorders(recorders...)(m)
	return func() {
		for _, c := range closers {
			c()
		}
	}
}

func gormRecorder(driver, dsn, name string, m *beresheet.Mission) (*store.GormRecorder, *gorm.DB, error) {
	db, err := store.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	r, err := store.NewGormRecorder(db, name, m)
	if err != nil {
		store.Close(db)
		return nil, nil, err
	}
	return r, db, nil
}
