package mech

import (
	"sort"
	"strings"
	"sync"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

type partKey struct {
	key    string
	mirror bool
}

// Catalog holds every parsed part and module, keyed by their namespaced
// names ("chest basic", "module cockpit"). Entries never change after
// loading.
type Catalog struct {
	costs   Costs
	parts   map[partKey]*PartDefinition
	modules map[string]*ModuleDefinition
	mu      sync.RWMutex
}

func NewCatalog(costs Costs) *Catalog {
	return &Catalog{
		costs:   costs,
		parts:   make(map[partKey]*PartDefinition, 16),
		modules: make(map[string]*ModuleDefinition, 16),
	}
}

func (c *Catalog) Costs() Costs {
	return c.costs
}

func partTypeOf(key string) (PartType, bool) {
	for _, t := range []PartType{PartHead, PartChest, PartArm, PartLeg} {
		if strings.HasPrefix(key, t.KeyPrefix()) {
			return t, true
		}
	}
	return 0, false
}

// Load parses every definition eagerly so broken content fails at load
// time rather than mid bout. Arms and legs are also parsed mirrored for
// the right side of the body.
func (c *Catalog) Load(sources map[string]string) error {
	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		source := sources[key]
		if strings.HasPrefix(key, moduleKeyPrefix) {
			module, err := c.costs.ParseModule(key, source)
			if err != nil {
				return err
			}
			c.mu.Lock()
			c.modules[key] = module
			c.mu.Unlock()
			continue
		}

		t, ok := partTypeOf(key)
		if !ok {
			return cerr.ErrDefinitionKey(key)
		}
		mirrors := []bool{false}
		if t == PartArm || t == PartLeg {
			mirrors = append(mirrors, true)
		}
		for _, mirror := range mirrors {
			part, err := c.costs.ParsePart(t, key, source, mirror)
			if err != nil {
				return err
			}
			c.mu.Lock()
			c.parts[partKey{key: key, mirror: mirror}] = part
			c.mu.Unlock()
		}
	}
	return nil
}

// Part looks up a part by type and bare name, e.g. (PartArm, "basic").
func (c *Catalog) Part(t PartType, name string, mirror bool) (*PartDefinition, error) {
	key := t.KeyPrefix() + name
	c.mu.RLock()
	part, prs := c.parts[partKey{key: key, mirror: mirror}]
	c.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrPartNotExist(key)
	}
	return part, nil
}

func (c *Catalog) Module(name string) (*ModuleDefinition, error) {
	key := moduleKeyPrefix + name
	c.mu.RLock()
	module, prs := c.modules[key]
	c.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrModuleNotExist(key)
	}
	return module, nil
}

// Parts lists the unmirrored parts of a type sorted by name.
func (c *Catalog) Parts(t PartType) []*PartDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*PartDefinition, 0, len(c.parts))
	for k, part := range c.parts {
		if !k.mirror && part.Type == t {
			out = append(out, part)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalog) Modules() []*ModuleDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*ModuleDefinition, 0, len(c.modules))
	for _, module := range c.modules {
		out = append(out, module)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Loadout resolves the four part names of a mech into its six parts.
func (c *Catalog) Loadout(head, chest, arms, legs string) (Parts, error) {
	var (
		parts Parts
		err   error
	)
	if parts.Head, err = c.Part(PartHead, head, false); err != nil {
		return Parts{}, err
	}
	if parts.Chest, err = c.Part(PartChest, chest, false); err != nil {
		return Parts{}, err
	}
	if parts.ArmL, err = c.Part(PartArm, arms, false); err != nil {
		return Parts{}, err
	}
	if parts.ArmR, err = c.Part(PartArm, arms, true); err != nil {
		return Parts{}, err
	}
	if parts.LegL, err = c.Part(PartLeg, legs, false); err != nil {
		return Parts{}, err
	}
	if parts.LegR, err = c.Part(PartLeg, legs, true); err != nil {
		return Parts{}, err
	}
	return parts, nil
}
