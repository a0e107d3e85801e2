package app

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Profiler times named CPU scopes for the debug overlay. Averages are
// exponentially smoothed so the overlay stays readable.
type Profiler struct {
	// Smoothing is the weight of the newest sample, in (0, 1].
	Smoothing float64

	scopes map[string]*scopeTiming
	order  []string
	counts map[string]int
}

type scopeTiming struct {
	start time.Time
	open  bool
	last  time.Duration
	avg   float64 // nanoseconds
	seen  bool
}

func NewProfiler() *Profiler {
	return &Profiler{
		Smoothing: 0.1,
		scopes:    make(map[string]*scopeTiming),
		counts:    make(map[string]int),
	}
}

func (p *Profiler) Begin(name string) {
	s, ok := p.scopes[name]
	if !ok {
		s = &scopeTiming{}
		p.scopes[name] = s
		p.order = append(p.order, name)
	}
	s.start = time.Now()
	s.open = true
}

// End closes a scope opened by Begin. Unopened scopes are ignored.
func (p *Profiler) End(name string) {
	s, ok := p.scopes[name]
	if !ok || !s.open {
		return
	}
	s.open = false
	p.record(s, time.Since(s.start))
}

func (p *Profiler) record(s *scopeTiming, d time.Duration) {
	s.last = d
	if !s.seen {
		s.avg, s.seen = float64(d), true
		return
	}
	s.avg += p.Smoothing * (float64(d) - s.avg)
}

func (p *Profiler) Last(name string) time.Duration {
	if s, ok := p.scopes[name]; ok {
		return s.last
	}
	return 0
}

func (p *Profiler) Average(name string) time.Duration {
	if s, ok := p.scopes[name]; ok {
		return time.Duration(s.avg)
	}
	return 0
}

func (p *Profiler) SetCount(name string, count int) {
	p.counts[name] = count
}

// String lists scopes in first-seen order, then counters by name.
func (p *Profiler) String() string {
	var sb strings.Builder
	for _, name := range p.order {
		fmt.Fprintf(&sb, "%-8s %6.2f ms\n", name, float64(p.Average(name).Microseconds())/1000)
	}
	names := make([]string, 0, len(p.counts))
	for name := range p.counts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%-8s %d\n", name, p.counts[name])
	}
	return sb.String()
}
