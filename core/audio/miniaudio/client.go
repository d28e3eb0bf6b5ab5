package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/parleylabs/parley/core/audio"
)

// Client owns one miniaudio context with a capture and a playback device,
// both running audio's default encoding (16kHz mono linear16).
type Client struct {
	audioContext *malgo.AllocatedContext

	capture  captureClient
	playback playbackClient
}

func NewClient() (*Client, error) {
	audioContext, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize miniaudio context: %w", err)
	}

	c := &Client{audioContext: audioContext}
	if err := c.capture.Init(audioContext); err != nil {
		c.teardownContext()
		return nil, fmt.Errorf("failed to initialize capture: %w", err)
	}
	if err := c.playback.Init(audioContext); err != nil {
		_ = c.capture.Uninit()
		c.teardownContext()
		return nil, fmt.Errorf("failed to initialize playback: %w", err)
	}

	return c, nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (c *Client) StartCapture(onAudio func(audio []byte)) error {
	return c.capture.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.capture.Stop()
}

func (c *Client) Play(ctx context.Context, data []byte) error {
	return c.playback.Play(ctx, data)
}

func (c *Client) Close() error {
	captureErr := c.capture.Uninit()
	playbackErr := c.playback.Uninit()
	c.teardownContext()

	if captureErr != nil {
		return captureErr
	}
	return playbackErr
}

func (c *Client) teardownContext() {
	if c.audioContext == nil {
		return
	}
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
	c.audioContext = nil
}
