package config

import "sort"

const (
	cometPerihelion   = 1.471e11
	cometEccentricity = 0.7
	sunOffset         = -2e10
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"kepler": {
		Name: "kepler", Dimensions: 2, Scheme: "verlet", Dt: 3600, Steps: 3 * 365 * 24, SampleEvery: 1,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass},
		Bodies: []BodyConfig{{
			Name: "Comet", Mass: 1e22, Position: []float64{cometPerihelion, 0},
			AutoOrbit: true, Eccentricity: cometEccentricity,
		}},
	},
	"focal": {
		Name: "focal", Dimensions: 2, Scheme: "verlet", Dt: 3600, Steps: 6 * 365 * 24, SampleEvery: 24,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass, Position: []float64{sunOffset, 0}},
		Bodies: []BodyConfig{{
			Name: "Comet", Mass: 1e22, Position: []float64{sunOffset + cometPerihelion, 0},
			AutoOrbit: true, Eccentricity: cometEccentricity,
		}},
	},
	"circular": {
		Name: "circular", Dimensions: 2, Scheme: "verlet", Dt: 3600, Steps: 365 * 24, SampleEvery: 24,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass},
		Bodies: []BodyConfig{{
			Name: "Earth", Mass: 5.972e24, Position: []float64{1.496e11, 0}, AutoOrbit: true,
		}},
	},
	"inner": {
		Name: "inner", Dimensions: 2, Scheme: "verlet", Dt: 3600, Steps: 2 * 365 * 24, SampleEvery: 24,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass},
		Bodies: []BodyConfig{
			{Planet: "Mercury"}, {Planet: "Venus"}, {Planet: "Earth"}, {Planet: "Mars"},
		},
	},
	"solar": {
		Name: "solar", Dimensions: 2, Scheme: "verlet", Dt: 3600, Steps: 365 * 24, SampleEvery: 87,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass, Position: []float64{sunOffset, 0}},
		Bodies: []BodyConfig{
			{Planet: "Mercury"}, {Planet: "Venus"}, {Planet: "Earth"}, {Planet: "Mars"}, {Planet: "Jupiter"},
			{Planet: "Saturn"}, {Planet: "Uranus"}, {Planet: "Neptune"}, {Planet: "Pluto"},
		},
	},
	"inclined": {
		Name: "inclined", Dimensions: 3, Scheme: "verlet", Dt: 3600, Steps: 365 * 24, SampleEvery: 24,
		Host: BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass},
		Bodies: []BodyConfig{
			{Name: "Earth", Mass: 5.972e24, Position: []float64{1.496e11, 0, 0}, AutoOrbit: true},
			{Name: "Tilted", Mass: 1e22, Position: []float64{0, 0, 2.2e11}, AutoOrbit: true},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
