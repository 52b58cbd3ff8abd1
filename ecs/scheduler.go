package ecs

// System is one step of a tick, run against the state it is scheduled on.
type System[W any] interface {
	Update(w W)
}

// SystemFunc adapts a function to System.
type SystemFunc[W any] func(w W)

func (f SystemFunc[W]) Update(w W) { f(w) }

// Scheduler runs systems in the order they were added.
type Scheduler[W any] struct {
	systems []System[W]
}

func NewScheduler[W any](systems ...System[W]) *Scheduler[W] {
	copied := append([]System[W](nil), systems...)
	return &Scheduler[W]{systems: copied}
}

func (s *Scheduler[W]) Add(system System[W]) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler[W]) Update(w W) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler[W]) Len() int {
	return len(s.systems)
}
