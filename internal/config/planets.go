package config

import (
	"strings"
)

// Planet is a predefined body. Position is the offset from the host at
// perihelion and Velocity the matching orbital velocity.
type Planet struct {
	Name     string
	Mass     float64
	Position []float64
	Velocity []float64
}

// Planets lists the predefined bodies in order from the Sun.
var Planets = []Planet{
	{Name: "Mercury", Mass: 3.3011e23, Position: []float64{5.7e10, 0}, Velocity: []float64{0, 47362}},
	{Name: "Venus", Mass: 4.8675e24, Position: []float64{1.075e11, 0}, Velocity: []float64{0, 35020}},
	{Name: "Earth", Mass: 5.972e24, Position: []float64{1.471e11, 0}, Velocity: []float64{0, 30300}},
	{Name: "Mars", Mass: 6.4171e23, Position: []float64{2.066e11, 0}, Velocity: []float64{0, 26500}},
	{Name: "Jupiter", Mass: 1.8982e27, Position: []float64{7.4052e11, 0}, Velocity: []float64{0, 13720}},
	{Name: "Saturn", Mass: 5.6834e26, Position: []float64{1.3526e12, 0}, Velocity: []float64{0, 10180}},
	{Name: "Uranus", Mass: 8.6810e25, Position: []float64{2.7413e12, 0}, Velocity: []float64{0, 7110}},
	{Name: "Neptune", Mass: 1.02413e26, Position: []float64{4.4445e12, 0}, Velocity: []float64{0, 5500}},
	{Name: "Pluto", Mass: 1.303e22, Position: []float64{4.4368e12, 0}, Velocity: []float64{0, 4670}},
}

// LookupPlanet finds a predefined planet by name, ignoring case.
func LookupPlanet(name string) (Planet, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Planets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Planet{}, false
}

func PlanetNames() []string {
	names := make([]string, len(Planets))
	for i, p := range Planets {
		names[i] = p.Name
	}
	return names
}
