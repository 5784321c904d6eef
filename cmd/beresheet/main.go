package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	beresheet "github.com/RachelAvrunin/Beresheet"
	kitlog "github.com/go-kit/log"
)

// This code reads the scenario, wires the exports and runs the landing.

var (
	scenario string
	pace     time.Duration
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", os.Getenv("BERESHEET_SCENARIO"), "scenario TOML file (defaults to Beresheet's landing)")
	flag.DurationVar(&pace, "pace", -1, "wall clock delay between ticks, overrides the scenario")
	flag.BoolVar(&verbose, "verbose", false, "log the scenario")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	os.Exit(run(logger))
}

func run(logger kitlog.Logger) int {
	sc, err := beresheet.LoadScenario(scenario)
	if err != nil {
		logger.Log("level", "critical", "subsys", "conf", "err", err)
		return 2
	}
	if pace >= 0 {
		sc.Pace = pace
	}
	if verbose {
		logger.Log("level", "info", "subsys", "conf", "scenario", sc.Name, "body", sc.Body, "vehicle", sc.Vehicle, "initial", fmtState(sc.Initial), "pace", sc.Pace)
	}

	metrics, err := beresheet.NewMetrics(nil)
	if err != nil {
		logger.Log("level", "warning", "subsys", "metrics", "err", err)
	}
	opts := append(sc.Options(),
		beresheet.WithReporter(beresheet.NewConsoleReporter(os.Stdout)),
		beresheet.WithLogger(logger),
		beresheet.WithMetrics(metrics))
	mission, err := beresheet.NewMission(sc.Body, sc.Vehicle, sc.Initial, opts...)
	if err != nil {
		logger.Log("level", "critical", "subsys", "conf", "err", err)
		return 2
	}

	closeExports := setupExports(sc, mission, logger)
	defer closeExports()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	outcome, err := mission.Land(ctx)
	if err != nil {
		logger.Log("level", "warning", "subsys", "landing", "err", err)
		return 130
	}
	if outcome.Failed() {
		return 1
	}
	return 0
}
