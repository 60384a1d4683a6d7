package connection

import (
	"errors"
	"testing"
	"time"

	"github.com/saeidalz13/mech-backend/content"
	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func testBout(t *testing.T) *combat.Bout {
	t.Helper()
	catalog, err := content.LoadCatalog(mech.DefaultCosts(), "")
	if err != nil {
		t.Fatal(err)
	}
	m, err := catalog.LoadMech(mech.SavedMech{
		Head:    "basic",
		Chest:   "basic",
		Arms:    "basic",
		Legs:    "basic",
		Modules: []mech.SavedModule{{Name: "cockpit", X: 5, Y: 4}},
	})
	if err != nil {
		t.Fatal(err)
	}
	bout, err := combat.NewBout(m, m)
	if err != nil {
		t.Fatal(err)
	}
	return bout
}

func TestRemoveStale(t *testing.T) {
	msm := NewMechSessionManager()
	now := time.Now()
	old := now.Add(-msm.cleanupInterval - time.Minute)

	fresh := msm.GenerateNewSession(nil)

	idle := msm.GenerateNewSession(nil)
	idle.createdAt = old

	fighting := msm.GenerateNewSession(nil)
	fighting.createdAt = old
	fighting.SetBout(testBout(t))

	if removed := msm.removeStale(now); removed != 1 {
		t.Fatalf("expected removed: %d\tgot: %d", 1, removed)
	}
	if msm.Count() != 2 {
		t.Fatalf("expected sessions: %d\tgot: %d", 2, msm.Count())
	}

	if _, err := msm.FindSession(idle.Id()); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected err: %v\tgot: %v", cerr.ErrSessionNotFound, err)
	}
	for _, s := range []*Session{fresh, fighting} {
		if _, err := msm.FindSession(s.Id()); err != nil {
			t.Fatalf("session %s should survive cleanup: %v", s.Id(), err)
		}
	}

	// once its bout ends the old session goes on the next pass
	fighting.SetBout(nil)
	if removed := msm.removeStale(now); removed != 1 {
		t.Fatalf("expected removed: %d\tgot: %d", 1, removed)
	}
}
