package speechtotext

import (
	"time"

	"github.com/parleylabs/parley/core/audio"
)

// RecognitionOptions configure one-utterance recognition. Vendors honor
// what their service supports and ignore the rest.
type RecognitionOptions struct {
	EncodingInfo audio.EncodingInfo

	// SilenceThreshold is how much trailing silence ends the utterance.
	SilenceThreshold time.Duration

	// Model names the vendor recognition model.
	Model string
}

type RecognitionOption func(*RecognitionOptions)

func WithEncodingInfo(encodingInfo audio.EncodingInfo) RecognitionOption {
	return func(o *RecognitionOptions) { o.EncodingInfo = encodingInfo }
}

func WithSilenceThreshold(threshold time.Duration) RecognitionOption {
	return func(o *RecognitionOptions) { o.SilenceThreshold = threshold }
}

func WithModel(model string) RecognitionOption {
	return func(o *RecognitionOptions) { o.Model = model }
}
