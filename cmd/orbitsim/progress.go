package main

import (
	"log"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// progressLogger writes a debug log line every tenth of a run.
type progressLogger struct {
	name  string
	total int
	every int
}

func newProgressLogger(name string, total int) *progressLogger {
	every := total / 10
	if every < 1 {
		every = 1
	}
	return &progressLogger{name: name, total: total, every: every}
}

func (p *progressLogger) OnStep(s *dynamo.System, step int, t float64) {
	if step%p.every != 0 && step != p.total {
		return
	}
	log.Printf("%s: step %d/%d (t=%.0fs, %d bodies)", p.name, step, p.total, t, len(s.Bodies))
}
