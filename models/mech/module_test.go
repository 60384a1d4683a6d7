package mech_test

import (
	"errors"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func TestParseModule(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		expectedCost  int
		expectedPivot mech.Point
		expectedCaps  []mech.Capability
	}{
		{
			name:          "cockpit",
			source:        "d\n---\nauto, cockpit\n---\n00",
			expectedCost:  2 * (300 - 50),
			expectedPivot: mech.NewPoint(1, 0),
			expectedCaps:  []mech.Capability{mech.CapCockpit},
		},
		{
			name:          "twin cannon with pivot",
			source:        "d\n---\n+100, attack, attack\n---\n0.0\n000\n---\n1,1",
			expectedCost:  100 + 2*500 - 5*50,
			expectedPivot: mech.NewPoint(1, 1),
			expectedCaps:  []mech.Capability{mech.CapAttack, mech.CapAttack},
		},
		{
			name:          "awkward shield",
			source:        "d\n---\nauto, shield, awkward\n---\n00\n00",
			expectedCost:  150,
			expectedPivot: mech.NewPoint(1, 1),
			expectedCaps:  []mech.Capability{mech.CapShield, mech.CapAwkward},
		},
		{
			name:          "flexible joint",
			source:        "d\n---\nauto, joint, flexible\n---\n00",
			expectedCost:  300,
			expectedPivot: mech.NewPoint(1, 0),
			expectedCaps:  []mech.Capability{mech.CapJoint, mech.CapFlexible},
		},
		{
			name:          "NaN cost uses the formula",
			source:        "d\n---\nNaN, cockpit\n---\n00",
			expectedCost:  2 * (300 - 50),
			expectedPivot: mech.NewPoint(1, 0),
			expectedCaps:  []mech.Capability{mech.CapCockpit},
		},
		{
			name:          "infinite cost uses the formula",
			source:        "d\n---\n+Inf, cockpit\n---\n00",
			expectedCost:  2 * (300 - 50),
			expectedPivot: mech.NewPoint(1, 0),
			expectedCaps:  []mech.Capability{mech.CapCockpit},
		},
		{
			name:          "unknown tags are kept but ignored",
			source:        "d\n---\n50, sparkly\n---\n0",
			expectedCost:  50,
			expectedPivot: mech.NewPoint(0, 0),
			expectedCaps:  []mech.Capability{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			module, err := mech.ParseModule("module x", test.source)
			if err != nil {
				t.Fatal(err)
			}
			if module.Cost != test.expectedCost {
				t.Fatalf("expected cost: %d\tgot: %d", test.expectedCost, module.Cost)
			}
			if module.Pivot != test.expectedPivot {
				t.Fatalf("expected pivot: %v\tgot: %v", test.expectedPivot, module.Pivot)
			}
			if caps := module.Capabilities(); !reflect.DeepEqual(caps, test.expectedCaps) {
				t.Fatalf("expected caps: %v\tgot: %v", test.expectedCaps, caps)
			}
			for _, c := range test.expectedCaps {
				if !module.Has(c) {
					t.Fatalf("expected module to have %s", c)
				}
			}
		})
	}
}

func TestParseModuleErrors(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		expectedErr error
	}{
		{name: "joint cell", source: "d\n---\nauto\n---\n0=", expectedErr: cerr.ErrUnknownCell},
		{name: "bad pivot", source: "d\n---\nauto\n---\n00\n---\none", expectedErr: cerr.ErrMalformedDefinition},
		{name: "too few sections", source: "d", expectedErr: cerr.ErrMalformedDefinition},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := mech.ParseModule("module x", test.source)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
			}
		})
	}
}
