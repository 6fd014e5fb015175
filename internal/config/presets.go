package config

var Presets = map[string]*Config{
	// The reference demo: a 10x10 cloth relaxed enough to ripple visibly.
	"cloth": DefaultConfig(),

	"stiff": {
		Sheet: SheetConfig{Width: 1.0, Height: 1.0, Rows: 10, Cols: 10, Stiffness: 120.0, Damping: 1.5},
		Sim:   SimConfig{Dt: DefaultDt, MaxElapsed: DefaultMaxElapsed, Duration: DefaultDuration},
		Force: ForceConfig{Magnitude: DefaultForce},
	},

	// Wide, short banner that flaps hard under the bottom-row force.
	"banner": {
		Sheet: SheetConfig{Width: 2.0, Height: 0.5, Rows: 5, Cols: 20, Stiffness: 25.0, Damping: 0.3},
		Sim:   SimConfig{Dt: DefaultDt, MaxElapsed: DefaultMaxElapsed, Duration: DefaultDuration},
		Force: ForceConfig{Magnitude: DefaultForce},
	},

	// Single column of nodes, a vertical rope.
	"rope": {
		Sheet: SheetConfig{Width: 0.1, Height: 1.5, Rows: 15, Cols: 1, Stiffness: 40.0, Damping: 0.8},
		Sim:   SimConfig{Dt: DefaultDt, MaxElapsed: DefaultMaxElapsed, Duration: DefaultDuration},
		Force: ForceConfig{Magnitude: DefaultForce},
	},

	// Dense sheet for benchmarking the force sweep.
	"dense": {
		Sheet: SheetConfig{Width: 1.0, Height: 1.0, Rows: 40, Cols: 40, Stiffness: 25.0, Damping: 0.5},
		Sim:   SimConfig{Dt: DefaultDt, MaxElapsed: DefaultMaxElapsed, Duration: 5.0},
		Force: ForceConfig{Magnitude: DefaultForce},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
