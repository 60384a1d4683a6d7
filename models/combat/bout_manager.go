package combat

import (
	"sync"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

type BoutManager interface {
	CreateBout(player, enemy *mech.Mech, opts ...Option) (*Bout, error)
	GetBout(boutUuid string) (*Bout, error)
	EndBout(boutUuid string)
	Count() int
}

type MechBoutManager struct {
	bouts map[string]*Bout
	opts  []Option
	mu    sync.RWMutex
}

var _ BoutManager = (*MechBoutManager)(nil)

// NewMechBoutManager applies defaults to every bout it creates, before
// the per-bout options.
func NewMechBoutManager(defaults ...Option) *MechBoutManager {
	return &MechBoutManager{
		bouts: make(map[string]*Bout, 10),
		opts:  defaults,
	}
}

func (mbm *MechBoutManager) CreateBout(player, enemy *mech.Mech, opts ...Option) (*Bout, error) {
	all := make([]Option, 0, len(mbm.opts)+len(opts))
	all = append(all, mbm.opts...)
	all = append(all, opts...)

	bout, err := NewBout(player, enemy, all...)
	if err != nil {
		return nil, err
	}

	mbm.mu.Lock()
	mbm.bouts[bout.Uuid] = bout
	mbm.mu.Unlock()
	return bout, nil
}

func (mbm *MechBoutManager) GetBout(boutUuid string) (*Bout, error) {
	mbm.mu.RLock()
	bout, prs := mbm.bouts[boutUuid]
	mbm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrBoutNotExists(boutUuid)
	}

	return bout, nil
}

func (mbm *MechBoutManager) EndBout(boutUuid string) {
	mbm.mu.Lock()
	delete(mbm.bouts, boutUuid)
	mbm.mu.Unlock()
}

func (mbm *MechBoutManager) Count() int {
	mbm.mu.RLock()
	defer mbm.mu.RUnlock()
	return len(mbm.bouts)
}
