package mech_test

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		mirror      bool
		expectedW   int
		expectedH   int
		expectedOut string
		expectedErr error
	}{
		{name: "pads short rows", source: "000\n0", expectedW: 3, expectedH: 2, expectedOut: "000\n0.."},
		{name: "spaces are empty", source: "0 =\n 0 ", expectedW: 3, expectedH: 2, expectedOut: "0.=\n.0."},
		{name: "mirror", source: "00=\n0..", mirror: true, expectedW: 3, expectedH: 2, expectedOut: "=00\n..0"},
		{name: "unknown cell", source: "0x0", expectedErr: cerr.ErrUnknownCell},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := mech.ParseLayout("test", test.source, test.mirror)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.W != test.expectedW || got.H != test.expectedH {
				t.Fatalf("expected size: %dx%d\tgot: %dx%d", test.expectedW, test.expectedH, got.W, got.H)
			}
			if out := mech.FormatLayout(got); out != test.expectedOut {
				t.Fatalf("expected:\n%s\ngot:\n%s", test.expectedOut, out)
			}
		})
	}
}

const chestBasic = `A plain torso.
---
auto
---
.0=0.
=000=
00000
0=0=0`

func TestParseChest(t *testing.T) {
	part, err := mech.ParsePart(mech.PartChest, "chest basic", chestBasic, false)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[mech.Connector]mech.Point{
		mech.ConnHead: mech.NewPoint(2, 0),
		mech.ConnArmL: mech.NewPoint(0, 1),
		mech.ConnArmR: mech.NewPoint(4, 1),
		mech.ConnLegL: mech.NewPoint(1, 3),
		mech.ConnLegR: mech.NewPoint(3, 3),
	}
	for c, want := range expected {
		if got := part.Connections[c]; got != want {
			t.Fatalf("connector %s expected: %v\tgot: %v", c, want, got)
		}
	}

	if part.Name != "basic" {
		t.Fatalf("expected name: %q\tgot: %q", "basic", part.Name)
	}
	if part.CellCount != 18 {
		t.Fatalf("expected cell count: %d\tgot: %d", 18, part.CellCount)
	}
	// 5 joints and 13 filled cells
	if part.Cost != 5*40+13*30 {
		t.Fatalf("expected cost: %d\tgot: %d", 5*40+13*30, part.Cost)
	}
}

func TestParseLimbs(t *testing.T) {
	tests := []struct {
		name     string
		partType mech.PartType
		source   string
		mirror   bool
		expected mech.Point
	}{
		{name: "head", partType: mech.PartHead, source: "d\n---\nauto\n---\n000\n0=0", expected: mech.NewPoint(1, 1)},
		{name: "arm", partType: mech.PartArm, source: "d\n---\nauto\n---\n00=\n00.\n0..", expected: mech.NewPoint(2, 0)},
		{name: "arm mirrored", partType: mech.PartArm, source: "d\n---\nauto\n---\n00=\n00.\n0..", mirror: true, expected: mech.NewPoint(0, 0)},
		{name: "leg", partType: mech.PartLeg, source: "d\n---\nauto\n---\n.=\n00\n0.\n0.", expected: mech.NewPoint(1, 0)},
		{name: "leg mirrored", partType: mech.PartLeg, source: "d\n---\nauto\n---\n.=\n00\n0.\n0.", mirror: true, expected: mech.NewPoint(0, 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			part, err := mech.ParsePart(test.partType, test.partType.KeyPrefix()+"x", test.source, test.mirror)
			if err != nil {
				t.Fatal(err)
			}
			if got := part.Connections[mech.ConnChest]; got != test.expected {
				t.Fatalf("expected chest joint: %v\tgot: %v", test.expected, got)
			}
		})
	}
}

func TestParsePartErrors(t *testing.T) {
	tests := []struct {
		name        string
		partType    mech.PartType
		source      string
		expectedErr error
	}{
		{name: "chest without joints", partType: mech.PartChest, source: "d\n---\nauto\n---\n000\n000", expectedErr: cerr.ErrMissingConnector},
		{name: "arm without joint", partType: mech.PartArm, source: "d\n---\nauto\n---\n000", expectedErr: cerr.ErrMissingConnector},
		{name: "missing sections", partType: mech.PartHead, source: "d\n---\nauto", expectedErr: cerr.ErrMalformedDefinition},
		{name: "bad cell", partType: mech.PartHead, source: "d\n---\nauto\n---\n0#=", expectedErr: cerr.ErrUnknownCell},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := mech.ParsePart(test.partType, "x", test.source, false)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
			}
		})
	}
}

func TestPartLiteralCost(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		expected int
	}{
		{name: "literal", cost: "120", expected: 120},
		{name: "auto", cost: "auto", expected: 40 + 2*30},
		{name: "blank", cost: "", expected: 40 + 2*30},
		{name: "plus formula", cost: "+10", expected: 10 + 40 + 2*30},
		{name: "minus formula", cost: "-10", expected: -10 + 40 + 2*30},
		{name: "NaN", cost: "NaN", expected: 40 + 2*30},
		{name: "lower case nan", cost: "nan", expected: 40 + 2*30},
		{name: "Inf", cost: "Inf", expected: 40 + 2*30},
		{name: "infinity", cost: "infinity", expected: 40 + 2*30},
		{name: "signed infinity", cost: "-Inf", expected: 40 + 2*30},
		{name: "digit separator", cost: "1_000", expected: 40 + 2*30},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			part, err := mech.ParsePart(mech.PartArm, "arm x", "d\n---\n"+test.cost+"\n---\n00=", false)
			if err != nil {
				t.Fatal(err)
			}
			if part.Cost != test.expected {
				t.Fatalf("expected cost: %d\tgot: %d", test.expected, part.Cost)
			}
		})
	}
}
