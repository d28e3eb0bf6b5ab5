package texttospeech

import "github.com/parleylabs/parley/core/audio"

// SynthesisOptions configure speech synthesis. An explicit voice overrides
// the vendor's locale-based voice selection.
type SynthesisOptions struct {
	EncodingInfo audio.EncodingInfo
	Voice        string
}

type SynthesisOption func(*SynthesisOptions)

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) { o.EncodingInfo = encodingInfo }
}

func WithVoice(voice string) SynthesisOption {
	return func(o *SynthesisOptions) { o.Voice = voice }
}
