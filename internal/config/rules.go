package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

// Rules are the tunable numbers of the game. Fields left out of the YAML
// keep their defaults.
type Rules struct {
	Costs   mech.Costs     `yaml:"costs"`
	Weights combat.Weights `yaml:"weights"`
}

func DefaultRules() Rules {
	return Rules{
		Costs:   mech.DefaultCosts(),
		Weights: combat.DefaultWeights(),
	}
}

func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// LoadRules reads path, or returns the defaults when path is empty.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}
	return ParseRules(data)
}
