package sim

import "github.com/milk9111/platformer/obj"

// Session receives the terminal signals of a run. Each World calls at most
// one of these, exactly once.
type Session interface {
	OnPlayerDied()
	OnLevelComplete()
	OnLevelFailed()
}

// Observer receives every gameplay event after the tick that raised it.
type Observer interface {
	OnEvent(evt obj.Event)
}

type ObserverFunc func(evt obj.Event)

func (f ObserverFunc) OnEvent(evt obj.Event) { f(evt) }

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeDied
	OutcomeComplete
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDied:
		return "died"
	case OutcomeComplete:
		return "complete"
	case OutcomeFailed:
		return "failed"
	}
	return "playing"
}

func outcomeOf(kind obj.EventKind) Outcome {
	switch kind {
	case obj.EventPlayerDied:
		return OutcomeDied
	case obj.EventLevelComplete:
		return OutcomeComplete
	case obj.EventLevelFailed:
		return OutcomeFailed
	}
	return OutcomeNone
}

type nopSession struct{}

func (nopSession) OnPlayerDied()    {}
func (nopSession) OnLevelComplete() {}
func (nopSession) OnLevelFailed()   {}
