package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/barkour/game"
)

// Board plays event cues through the speaker. A nil or uninitialised Board
// is silent.
type Board struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewBoard(volume float64) *Board {
	return &Board{mixer: &beep.Mixer{}, volume: volume}
}

func (b *Board) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Play queues the cue for each event that has one.
func (b *Board) Play(events ...game.Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	for _, evt := range events {
		cue := Cue(evt.Type, b.volume)
		if cue == nil {
			continue
		}
		speaker.Lock()
		b.mixer.Add(cue)
		speaker.Unlock()
	}
}

func (b *Board) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.initialized = false
}
