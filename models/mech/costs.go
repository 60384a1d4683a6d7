package mech

// Costs is the price table used by part/module parsing and the build
// budget check. Field tags match the rules YAML file.
type Costs struct {
	Max int `yaml:"costMax" json:"costMax"`

	// parts
	PerEmptyCell int `yaml:"costPerEmptyCell" json:"costPerEmptyCell"`
	PerJoint     int `yaml:"costPerJoint" json:"costPerJoint"`
	PerBodyCell  int `yaml:"costPerBodyCell" json:"costPerBodyCell"`

	// modules
	PerModuleCell      float64 `yaml:"costPerModuleCell" json:"costPerModuleCell"`
	PerCockpitCell     float64 `yaml:"costPerCockpitCell" json:"costPerCockpitCell"`
	PerArmourCell      float64 `yaml:"costPerArmourCell" json:"costPerArmourCell"`
	PerJointExtendCell float64 `yaml:"costPerJointExtendCell" json:"costPerJointExtendCell"`
	PerAttack          float64 `yaml:"costPerAttack" json:"costPerAttack"`
	PerRadar           float64 `yaml:"costPerRadar" json:"costPerRadar"`
	PerShield          float64 `yaml:"costPerShield" json:"costPerShield"`
	PerHeatsink        float64 `yaml:"costPerHeatsink" json:"costPerHeatsink"`
	MultAwkward        float64 `yaml:"costMultAwkward" json:"costMultAwkward"`
	MultFlexible       float64 `yaml:"costMultFlexible" json:"costMultFlexible"`
}

func DefaultCosts() Costs {
	return Costs{
		Max:                5000,
		PerEmptyCell:       30,
		PerJoint:           40,
		PerBodyCell:        1,
		PerModuleCell:      -50,
		PerCockpitCell:     300,
		PerArmourCell:      80,
		PerJointExtendCell: 150,
		PerAttack:          500,
		PerRadar:           400,
		PerShield:          400,
		PerHeatsink:        400,
		MultAwkward:        0.75,
		MultFlexible:       1.5,
	}
}
