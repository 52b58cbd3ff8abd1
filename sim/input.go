package sim

import (
	"sync"

	"github.com/milk9111/platformer/obj"
)

const (
	IntentLeft  = "left"
	IntentRight = "right"
	IntentJump  = "jump"
	IntentFire  = "fire"
)

// InputState holds the latest held state of each intent. Devices write to
// it from their own goroutines; the loop samples it once per tick.
type InputState struct {
	mu      sync.RWMutex
	intents obj.Intents
}

// Set records whether the named intent is held. Unknown names are ignored
// and reported as false.
func (s *InputState) Set(name string, held bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case IntentLeft:
		s.intents.Left = held
	case IntentRight:
		s.intents.Right = held
	case IntentJump:
		s.intents.Jump = held
	case IntentFire:
		s.intents.Fire = held
	default:
		return false
	}
	return true
}

func (s *InputState) Snapshot() obj.Intents {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intents
}

// Reset releases every intent.
func (s *InputState) Reset() {
	s.mu.Lock()
	s.intents = obj.Intents{}
	s.mu.Unlock()
}
