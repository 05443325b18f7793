package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// Backend is where rendered PCM clips go. The real backend talks to the
// audio device through oto; NullBackend keeps tests and headless runs
// device-free.
type Backend interface {
	// Start activates the device. Safe to call repeatedly; the first
	// call may block until the device is ready.
	Start() error
	// Play queues a mono float32 clip for playback and returns
	// immediately. Completion timing is the caller's concern.
	Play(samples []float32, sampleRate int)
}

// OtoBackend plays clips through a lazily-created oto context. The
// context is process-wide and never torn down — matching the "activate
// the audio device first, keep it" contract.
type OtoBackend struct {
	mu   sync.Mutex
	ctx  *oto.Context
	rate int
	log  *zap.Logger
}

func NewOtoBackend(sampleRate int, log *zap.Logger) *OtoBackend {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &OtoBackend{rate: sampleRate, log: log}
}

func (b *OtoBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx != nil {
		return nil
	}
	op := &oto.NewContextOptions{
		SampleRate:   b.rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready
	b.ctx = ctx
	b.log.Debug("audio device ready", zap.Int("sample_rate", b.rate))
	return nil
}

func (b *OtoBackend) Play(samples []float32, sampleRate int) {
	b.mu.Lock()
	ctx := b.ctx
	b.mu.Unlock()
	if ctx == nil || len(samples) == 0 {
		return
	}
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	p := ctx.NewPlayer(bytes.NewReader(buf))
	p.Play()
	// Close the player after the clip has drained. Audible length is
	// known exactly; pad for device buffering.
	clipLen := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)
	go func() {
		time.Sleep(clipLen + 200*time.Millisecond)
		_ = p.Close()
	}()
}

// NullBackend discards clips. Used when audio is disabled and in tests.
type NullBackend struct{}

func (NullBackend) Start() error                { return nil }
func (NullBackend) Play([]float32, int)         {}
