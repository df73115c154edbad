package config

import (
	"fmt"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 3600.0
	DefaultSteps       = 365 * 24
	DefaultDimensions  = 2
	DefaultScheme      = "verlet"
	DefaultSampleEvery = 1
	DefaultHostName    = "Sun"
	DefaultHostMass    = 1.989e30

	// DefaultEscapeRadius is about 67 AU, well past Pluto's aphelion.
	DefaultEscapeRadius = 1e13
)

type Config struct {
	Name         string       `yaml:"name"`
	Dimensions   int          `yaml:"dimensions"`
	Scheme       string       `yaml:"scheme"`
	Dt           float64      `yaml:"dt"`
	Steps        int          `yaml:"steps"`
	SubSteps     int          `yaml:"sub_steps,omitempty"`
	SampleEvery  int          `yaml:"sample_every,omitempty"`
	Workers      int          `yaml:"workers,omitempty"`
	Gravity      *float64     `yaml:"gravity,omitempty"`
	// EscapeRadius is the host distance past which the stability metric
	// counts a body as lost. Zero means DefaultEscapeRadius.
	EscapeRadius float64      `yaml:"escape_radius,omitempty"`
	Host         BodyConfig   `yaml:"host"`
	Bodies       []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one body. Planet fills any field left empty from the
// predefined table, placing the body relative to the host. AutoOrbit replaces
// the velocity with a counter-clockwise insertion: circular, or leaving
// periapsis with the given eccentricity.
type BodyConfig struct {
	Name         string    `yaml:"name,omitempty"`
	Planet       string    `yaml:"planet,omitempty"`
	Mass         float64   `yaml:"mass,omitempty"`
	Position     []float64 `yaml:"position,omitempty,flow"`
	Velocity     []float64 `yaml:"velocity,omitempty,flow"`
	AutoOrbit    bool      `yaml:"auto_orbit,omitempty"`
	Eccentricity float64   `yaml:"eccentricity,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		Dimensions:  DefaultDimensions,
		Scheme:      DefaultScheme,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Host:        BodyConfig{Name: DefaultHostName, Mass: DefaultHostMass},
		Bodies:      []BodyConfig{{Planet: "Earth"}},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone deep-copies c so presets can be modified freely.
func (c *Config) Clone() *Config {
	out := *c
	if c.Gravity != nil {
		g := *c.Gravity
		out.Gravity = &g
	}
	out.Host = c.Host.clone()
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		out.Bodies[i] = b.clone()
	}
	return &out
}

func (b BodyConfig) clone() BodyConfig {
	b.Position = append([]float64(nil), b.Position...)
	b.Velocity = append([]float64(nil), b.Velocity...)
	return b
}

// G returns the gravitational constant for the run.
func (c *Config) G() float64 {
	if c.Gravity != nil {
		return *c.Gravity
	}
	return physics.G
}

func (c *Config) EscapeDistance() float64 {
	if c.EscapeRadius > 0 {
		return c.EscapeRadius
	}
	return DefaultEscapeRadius
}

func (c *Config) dim() int {
	if c.Dimensions == 0 {
		return DefaultDimensions
	}
	return c.Dimensions
}

func (c *Config) Force() *physics.Gravity {
	g := physics.NewGravity()
	g.G = c.G()
	return g
}

func (c *Config) Integrator() (dynamo.Integrator, error) {
	scheme, err := integrators.ParseScheme(c.Scheme)
	if err != nil {
		return nil, err
	}
	return integrators.New(scheme)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:             c.Dt,
		TotalSteps:     c.Steps,
		SubSteps:       c.SubSteps,
		SampleEvery:    c.SampleEvery,
		IncludeInitial: true,
		ValidateState:  true,
		Workers:        c.Workers,
	}
}

// Build resolves planet references and orbit insertions and returns a
// validated system.
func (c *Config) Build() (*dynamo.System, error) {
	dim := c.dim()
	if dim != 2 && dim != 3 {
		return nil, &dynamo.ConfigurationError{Field: "dimensions", Reason: "must be 2 or 3"}
	}

	host, err := c.buildBody(c.Host, dim, nil)
	if err != nil {
		return nil, err
	}

	bodies := make([]*dynamo.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := c.buildBody(bc, dim, host)
		if err != nil {
			return nil, err
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("body%d", i+1)
		}
		bodies = append(bodies, b)
	}

	sys := dynamo.NewSystem(dim, host, bodies...)
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (c *Config) buildBody(bc BodyConfig, dim int, host *dynamo.Body) (*dynamo.Body, error) {
	b := &dynamo.Body{
		Name:     bc.Name,
		Mass:     bc.Mass,
		Position: dynamo.Vector(bc.Position).Clone(),
		Velocity: dynamo.Vector(bc.Velocity).Clone(),
	}

	if bc.Planet != "" {
		p, ok := LookupPlanet(bc.Planet)
		if !ok {
			return nil, &dynamo.ConfigurationError{Field: "planet", Body: bc.Name, Reason: fmt.Sprintf("unknown planet %q", bc.Planet)}
		}
		if b.Name == "" {
			b.Name = p.Name
		}
		if b.Mass == 0 {
			b.Mass = p.Mass
		}
		if len(b.Position) == 0 {
			b.Position = pad(p.Position, dim)
			if host != nil && len(host.Position) == dim {
				for i := range b.Position {
					b.Position[i] += host.Position[i]
				}
			}
		}
		if len(b.Velocity) == 0 {
			b.Velocity = pad(p.Velocity, dim)
		}
	}

	if len(b.Position) == 0 {
		b.Position = make(dynamo.Vector, dim)
	}
	if len(b.Velocity) == 0 {
		b.Velocity = make(dynamo.Vector, dim)
	}

	if bc.AutoOrbit && host != nil {
		if len(b.Position) != dim || len(host.Position) != dim {
			return nil, &dynamo.ConfigurationError{Field: "position", Body: b.Name, Reason: fmt.Sprintf("must have %d components for auto_orbit", dim)}
		}
		if bc.Eccentricity < 0 || bc.Eccentricity >= 1 {
			return nil, &dynamo.ConfigurationError{Field: "eccentricity", Body: b.Name, Reason: "must be in [0, 1)"}
		}
		b.Velocity = insertion(c.G()*host.Mass, host, b.Position, bc.Eccentricity)
	}

	return b, nil
}

// insertion is relative to the host, which the driver never moves.
func insertion(gm float64, host *dynamo.Body, pos dynamo.Vector, e float64) dynamo.Vector {
	rel := make(dynamo.Vector, len(pos))
	for i := range rel {
		rel[i] = pos[i] - host.Position[i]
	}
	v := physics.OrbitalInsert(gm, rel)
	if r := rel.Norm(); e > 0 && r > 0 && gm > 0 {
		scale := physics.PeriapsisSpeed(gm, r, e) / physics.CircularSpeed(gm, r)
		for i := range v {
			v[i] *= scale
		}
	}
	return v
}

func pad(v []float64, dim int) dynamo.Vector {
	out := make(dynamo.Vector, dim)
	copy(out, v)
	return out
}
