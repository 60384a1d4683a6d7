package mech

// SavedModule stores the intent of one placement, never its geometry.
type SavedModule struct {
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	FlipH bool   `json:"flipH"`
	FlipV bool   `json:"flipV"`
	Turns int    `json:"turns"`
}

// SavedMech is the round-trippable mech configuration. Arms and legs name
// one definition used for both sides.
type SavedMech struct {
	Head    string        `json:"head"`
	Chest   string        `json:"chest"`
	Arms    string        `json:"arms"`
	Legs    string        `json:"legs"`
	Modules []SavedModule `json:"modules"`
}

func (m *Mech) Save() SavedMech {
	saved := SavedMech{
		Head:    m.Parts.Head.Name,
		Chest:   m.Parts.Chest.Name,
		Arms:    m.Parts.ArmL.Name,
		Legs:    m.Parts.LegL.Name,
		Modules: make([]SavedModule, len(m.Placements)),
	}
	for i, p := range m.Placements {
		saved.Modules[i] = SavedModule{
			Name:  p.Module.Name,
			X:     p.Anchor.X,
			Y:     p.Anchor.Y,
			FlipH: p.FlipH,
			FlipV: p.FlipV,
			Turns: p.Turns,
		}
	}
	return saved
}

// LoadMech resolves every name against the catalog and reassembles the
// mech. Unknown names fail with ErrPartNotFound or ErrModuleNotFound.
func (c *Catalog) LoadMech(saved SavedMech) (*Mech, error) {
	parts, err := c.Loadout(saved.Head, saved.Chest, saved.Arms, saved.Legs)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement, len(saved.Modules))
	for i, sm := range saved.Modules {
		module, err := c.Module(sm.Name)
		if err != nil {
			return nil, err
		}
		placements[i] = Placement{
			Module:    module,
			Anchor:    Point{X: sm.X, Y: sm.Y},
			Transform: Transform{Turns: sm.Turns, FlipH: sm.FlipH, FlipV: sm.FlipV},
		}
	}
	return Assemble(parts, placements)
}
