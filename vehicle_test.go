package beresheet

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestVehicleDerived(t *testing.T) {
	if w := Beresheet.TotalWeight(210); w != 375 {
		t.Fatalf("weight = %f", w)
	}
	if th := Beresheet.TotalThrust(); th != 630 {
		t.Fatalf("thrust = %f", th)
	}
	if r := Beresheet.FuelRate(); !scalar.EqualWithinAbs(r, 0.222, 1e-12) {
		t.Fatalf("fuel rate = %f", r)
	}
	if a := Beresheet.EngineAcceleration(210); !scalar.EqualWithinAbs(a, 1.68, 1e-12) {
		t.Fatalf("engine acceleration = %f", a)
	}
	// torque = 0.925 * 1.68, moment = 0.5 * 375 * 0.925²
	exp := 0.925 * 1.68 / (0.5 * 375 * 0.925 * 0.925)
	if a := Beresheet.AngularAcceleration(210); !scalar.EqualWithinAbs(a, exp, 1e-12) {
		t.Fatalf("angular acceleration = %f != %f", a, exp)
	}
	if Beresheet.AngularAcceleration(10) <= Beresheet.AngularAcceleration(210) {
		t.Fatal("a lighter vehicle should rotate faster")
	}
}

func TestVehicleValidate(t *testing.T) {
	if err := Beresheet.Validate(); err != nil {
		t.Fatalf("Beresheet is invalid: %s", err)
	}
	noMass := Beresheet
	noMass.DryMass = 0
	noSide := Beresheet
	noSide.SideCount = 0
	noThrust := Beresheet
	noThrust.Main = NewEngine(0, 1)
	noBurn := Beresheet
	noBurn.Side = NewEngine(1, -1)
	missing := Beresheet
	missing.Main = nil
	for _, v := range []Vehicle{noMass, noSide, noThrust, noBurn, missing} {
		if err := v.Validate(); !errors.Is(err, ErrInvalidVehicle) {
			t.Fatalf("expected ErrInvalidVehicle, got %v", err)
		}
	}
}
