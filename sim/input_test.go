package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/platformer/obj"
)

func TestInputStateSnapshot(t *testing.T) {
	var s InputState
	assert.True(t, s.Set(IntentLeft, true))
	assert.True(t, s.Set(IntentFire, true))
	assert.False(t, s.Set("dash", true))

	assert.Equal(t, obj.Intents{Left: true, Fire: true}, s.Snapshot())

	s.Set(IntentFire, false)
	assert.Equal(t, obj.Intents{Left: true}, s.Snapshot())

	s.Reset()
	assert.Equal(t, obj.Intents{}, s.Snapshot())
}

func TestInputStateConcurrentWriters(t *testing.T) {
	var s InputState
	var wg sync.WaitGroup
	for _, name := range []string{IntentLeft, IntentRight, IntentJump, IntentFire} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Set(name, true)
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, obj.Intents{Left: true, Right: true, Jump: true, Fire: true}, s.Snapshot())
}
