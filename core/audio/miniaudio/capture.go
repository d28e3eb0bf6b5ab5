package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/parleylabs/parley/core/audio"
)

// captureFrames keeps periods at 30ms of 16kHz audio, small enough for
// live endpointing on the recognition stream.
const captureFrames = 480

type captureClient struct {
	device *malgo.Device

	mu      sync.Mutex
	handler func(frame []byte)
	running bool
}

func (c *captureClient) Init(audioContext *malgo.AllocatedContext) error {
	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.SampleRate = uint32(audio.DefaultSampleRate)
	config.Capture.Format = malgo.FormatS16
	config.Capture.Channels = 1
	config.Alsa.NoMMap = 1
	config.PerformanceProfile = malgo.LowLatency
	config.PeriodSizeInFrames = captureFrames
	config.Periods = 3

	sampleBytes := malgo.SampleSizeInBytes(config.Capture.Format)

	device, err := malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			n := int(frameCount) * sampleBytes
			if n == 0 || len(input) < n {
				return
			}

			c.mu.Lock()
			handler := c.handler
			c.mu.Unlock()
			if handler != nil {
				handler(input[:n])
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.mu.Unlock()
	return nil
}

func (c *captureClient) Start(handler func(frame []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.device == nil:
		return fmt.Errorf("capture device not initialized")
	case c.running:
		return fmt.Errorf("capture already running")
	}

	c.handler = handler
	if err := c.device.Start(); err != nil {
		c.handler = nil
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	c.running = true
	return nil
}

func (c *captureClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil || !c.running {
		return nil
	}
	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}
	c.handler = nil
	c.running = false
	return nil
}

func (c *captureClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	c.handler = nil
	c.running = false
	return nil
}
