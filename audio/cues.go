package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/milk9111/barkour/game"
)

const SampleRate = beep.SampleRate(44100)

type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes are short rising or falling blips per event. Landing is silent;
// it fires too often to be pleasant.
var cueNotes = map[game.EventType][]note{
	game.EventJump:            {{520, 40 * time.Millisecond}, {780, 60 * time.Millisecond}},
	game.EventWallJump:        {{440, 30 * time.Millisecond}, {660, 30 * time.Millisecond}, {880, 40 * time.Millisecond}},
	game.EventPickupCollected: {{880, 60 * time.Millisecond}, {1320, 90 * time.Millisecond}},
	game.EventPowerExpired:    {{660, 80 * time.Millisecond}, {440, 120 * time.Millisecond}},
}

// Cue returns a fresh streamer for the event, or nil if it has no sound.
func Cue(t game.EventType, volume float64) beep.Streamer {
	notes, ok := cueNotes[t]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n.freq, n.dur))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// CueLength is the number of samples Cue(t) produces.
func CueLength(t game.EventType) int {
	n := 0
	for _, note := range cueNotes[t] {
		n += SampleRate.N(note.dur)
	}
	return n
}

func tone(freq float64, dur time.Duration) beep.Streamer {
	samples := SampleRate.N(dur)
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return beep.Silence(samples)
	}
	return beep.Take(samples, sine)
}

// math.Log2(0) is -Inf, so zero volume is mapped to silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
