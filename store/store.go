// Package store persists landings and their snapshots in a SQL database through gorm, or in InfluxDB.
package store

import (
	"errors"
	"fmt"
	"time"

	beresheet "github.com/RachelAvrunin/Beresheet"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnknownDriver is returned when opening a database with an unsupported driver.
var ErrUnknownDriver = errors.New("store: unknown database driver")

// Landing is one run of the simulation.
type Landing struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Name      string
	Body      string
	Vehicle   string
	StartDT   time.Time
	Outcome   string
	Finished  bool
	Snapshots []Snapshot
}

// Snapshot is one recorded state of a landing.
type Snapshot struct {
	ID        uint `gorm:"primarykey"`
	LandingID uint `gorm:"index"`
	Time      int
	JDE       float64
	Altitude  float64
	VSpeed    float64
	VAcc      float64
	HSpeed    float64
	HAcc      float64
	Fuel      float64
	Weight    float64
	Angle     float64
	AngSpeed  float64
	AngAcc    float64
}

// Open connects to the database and migrates the schema. The driver is either "sqlite" or "postgres".
// The ":memory:" SQLite database lives as long as the returned connection.
func Open(driver, dsn string) (*gorm.DB, error) {
	conf := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
	var db *gorm.DB
	var err error
	switch driver {
	case "sqlite":
		if db, err = gorm.Open(sqlite.Open(dsn), conf); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Every connection to :memory: would be a different database.
		sqlDB.SetMaxOpenConns(1)
		for _, pragma := range []string{
			"PRAGMA journal_mode = MEMORY;",
			"PRAGMA synchronous = OFF;",
		} {
			if err := db.Exec(pragma).Error; err != nil {
				return nil, fmt.Errorf("error setting PRAGMA: %s", err)
			}
		}
	case "postgres":
		if db, err = gorm.Open(postgres.Open(dsn), conf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	if err := db.AutoMigrate(&Landing{}, &Snapshot{}); err != nil {
		return nil, fmt.Errorf("could not migrate: %w", err)
	}
	return db, nil
}

// Close closes the connection of the database.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GormRecorder records the snapshots of one landing in the database.
type GormRecorder struct {
	db      *gorm.DB
	landing Landing
}

// NewGormRecorder creates the landing row and returns its recorder.
func NewGormRecorder(db *gorm.DB, name string, m *beresheet.Mission) (*GormRecorder, error) {
	r := &GormRecorder{db: db, landing: Landing{
		Name:    name,
		Body:    m.Body.Name,
		Vehicle: m.Vehicle.Name,
		StartDT: m.StartDT,
	}}
	if err := db.Create(&r.landing).Error; err != nil {
		return nil, fmt.Errorf("could not create landing: %w", err)
	}
	return r, nil
}

// ID returns the identifier of the recorded landing.
func (r *GormRecorder) ID() uint {
	return r.landing.ID
}

// Record implements the beresheet.Recorder interface.
func (r *GormRecorder) Record(s beresheet.Snapshot) error {
	return r.db.Create(&Snapshot{
		LandingID: r.landing.ID,
		Time:      s.Time,
		JDE:       s.JDE(),
		Altitude:  s.Altitude,
		VSpeed:    s.VSpeed,
		VAcc:      s.VAcc,
		HSpeed:    s.HSpeed,
		HAcc:      s.HAcc,
		Fuel:      s.Fuel,
		Weight:    s.Weight,
		Angle:     s.Angle,
		AngSpeed:  s.AngSpeed,
		AngAcc:    s.AngAcc,
	}).Error
}

// Finish implements the beresheet.Recorder interface.
func (r *GormRecorder) Finish(o beresheet.Outcome) error {
	return r.db.Model(&r.landing).Updates(map[string]interface{}{"outcome": o.String(), "finished": true}).Error
}
