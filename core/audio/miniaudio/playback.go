package miniaudio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/parleylabs/parley/core/audio"
)

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	pending []byte
	// drained is non-nil while a Play call waits for the buffer to empty.
	drained chan struct{}

	mu      sync.Mutex
	audioMu sync.Mutex
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.DefaultSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) func(pOutput, _ []byte, frameCount uint32) {
	return func(pOutput, _ []byte, frameCount uint32) {
		n := int(frameCount) * bytesPerFrame

		c.audioMu.Lock()
		copied := copy(pOutput[:min(n, len(pOutput))], c.pending)
		c.pending = c.pending[copied:]
		if len(c.pending) == 0 && c.drained != nil {
			close(c.drained)
			c.drained = nil
		}
		c.audioMu.Unlock()

		for i := copied; i < len(pOutput); i++ {
			pOutput[i] = 0
		}
	}
}

// Play queues the audio and blocks until the device consumed it all, plus
// the device-side buffer duration so the tail is audible before return.
func (c *playbackClient) Play(ctx context.Context, data []byte) error {
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()
	if device == nil {
		return fmt.Errorf("device not initialized")
	}

	if !device.IsStarted() {
		if err := device.Start(); err != nil {
			return fmt.Errorf("failed to start playback device: %w", err)
		}
	}

	c.audioMu.Lock()
	c.pending = append(c.pending, data...)
	if c.drained == nil {
		c.drained = make(chan struct{})
	}
	drained := c.drained
	c.audioMu.Unlock()

	select {
	case <-drained:
	case <-ctx.Done():
		c.clearBuffer()
		return ctx.Err()
	}

	tail := time.Duration(c.config.PeriodSizeInFrames*uint32(c.config.Periods)) *
		time.Second / time.Duration(audio.DefaultSampleRate)
	select {
	case <-time.After(tail):
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (c *playbackClient) clearBuffer() {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.pending = nil
	if c.drained != nil {
		close(c.drained)
		c.drained = nil
	}
}

func (c *playbackClient) Uninit() error {
	c.clearBuffer()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	return nil
}
