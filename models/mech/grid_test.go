package mech_test

import (
	"testing"

	"github.com/saeidalz13/mech-backend/models/mech"
)

func mustLayout(t *testing.T, source string) mech.Layout {
	t.Helper()
	l, err := mech.ParseLayout("test", source, false)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRotateClockwise(t *testing.T) {
	g := mustLayout(t, "0=.\n00.")

	tests := []struct {
		name  string
		turns int
		want  string
	}{
		{name: "no turn", turns: 0, want: "0=.\n00."},
		{name: "one turn", turns: 1, want: "00\n0=\n.."},
		{name: "two turns", turns: 2, want: ".00\n.=0"},
		{name: "negative turn", turns: -1, want: "..\n=0\n00"},
		{name: "full circle", turns: 4, want: "0=.\n00."},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mech.FormatLayout(mech.RotateClockwise(g, test.turns))
			if got != test.want {
				t.Fatalf("expected:\n%s\ngot:\n%s", test.want, got)
			}
		})
	}
}

func TestFlipIsInvolution(t *testing.T) {
	g := mustLayout(t, "0=.\n00.\n..0")

	if !mech.FlipH(mech.FlipH(g)).Equal(g) {
		t.Fatal("horizontal flip applied twice should be the identity")
	}
	if !mech.FlipV(mech.FlipV(g)).Equal(g) {
		t.Fatal("vertical flip applied twice should be the identity")
	}
	if mech.FormatLayout(mech.FlipH(g)) != ".=0\n.00\n0.." {
		t.Fatalf("unexpected horizontal flip:\n%s", mech.FormatLayout(mech.FlipH(g)))
	}
}

func TestOddTurnsSwapFlips(t *testing.T) {
	g := mustLayout(t, "0=.\n00.")

	got := mech.ApplyTransform(g, mech.Transform{Turns: 1, FlipH: true})
	want := mech.FlipV(mech.RotateClockwise(g, 1))
	if !got.Equal(want) {
		t.Fatalf("expected:\n%s\ngot:\n%s", mech.FormatLayout(want), mech.FormatLayout(got))
	}

	got = mech.ApplyTransform(g, mech.Transform{Turns: 2, FlipH: true})
	want = mech.FlipH(mech.RotateClockwise(g, 2))
	if !got.Equal(want) {
		t.Fatalf("expected:\n%s\ngot:\n%s", mech.FormatLayout(want), mech.FormatLayout(got))
	}
}

func TestTransformPointMatchesApplyTransform(t *testing.T) {
	g := mustLayout(t, "0=..\n00.0\n.0=0")

	for turns := 0; turns < 4; turns++ {
		for _, fh := range []bool{false, true} {
			for _, fv := range []bool{false, true} {
				tr := mech.Transform{Turns: turns, FlipH: fh, FlipV: fv}
				out := mech.ApplyTransform(g, tr)
				for y := 0; y < g.H; y++ {
					for x := 0; x < g.W; x++ {
						p := mech.NewPoint(x, y)
						q := mech.TransformPoint(p, g.W, g.H, tr)
						if out.At(q) != g.At(p) {
							t.Fatalf("transform %+v: cell %v moved to %v but values differ", tr, p, q)
						}
					}
				}
			}
		}
	}
}

func TestFlatten(t *testing.T) {
	dot := mustLayout(t, "0")
	joint := mustLayout(t, "=")

	out, bounds := mech.Flatten(
		mech.Layer[mech.BodyCell]{Cells: dot, Offset: mech.NewPoint(-2, -1)},
		mech.Layer[mech.BodyCell]{Cells: dot, Offset: mech.NewPoint(3, 4)},
		mech.Layer[mech.BodyCell]{Cells: joint, Offset: mech.NewPoint(3, 4)},
	)

	want := mech.Bounds{X: -2, Y: -1, W: 6, H: 6}
	if bounds != want {
		t.Fatalf("expected bounds: %+v\tgot: %+v", want, bounds)
	}
	if out.At(mech.NewPoint(0, 0)) != mech.CellFilled {
		t.Fatal("expected filled cell at the top left")
	}
	if out.At(mech.NewPoint(5, 5)) != mech.CellJoint {
		t.Fatal("later layer should overwrite the earlier one")
	}
	if out.Count() != 2 {
		t.Fatalf("expected cells: %d\tgot: %d", 2, out.Count())
	}

	empty, bounds := mech.Flatten[mech.BodyCell]()
	if empty.W != 0 || empty.H != 0 || bounds != (mech.Bounds{}) {
		t.Fatal("flattening nothing should give an empty grid")
	}
}
