package audio

import "context"

// Source provides captured input audio frames in the encoding reported by
// EncodingInfo. Implementations are backed by one input device and are
// used by at most one recognition at a time.
type Source interface {
	EncodingInfo() EncodingInfo
	StartCapture(onAudio func(audio []byte)) error
	StopCapture() error
}

// Sink plays raw audio through an output device, blocking until playback
// of the given buffer completes.
type Sink interface {
	EncodingInfo() EncodingInfo
	Play(ctx context.Context, audio []byte) error
}
