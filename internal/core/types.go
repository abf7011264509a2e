package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is anything the run loops can drive and draw: a fixed-size grid of
// byte cells that advances one generation per Step.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory builds a Sim from string options such as "w", "h" and "seed".
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register makes a factory available under name. It is meant to be called
// from init and panics when name is taken.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	if _, dup := sims[name]; dup {
		panic("core: Register called twice for sim " + name)
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
