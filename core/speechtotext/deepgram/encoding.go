package deepgram

import (
	"fmt"

	"github.com/parleylabs/parley/core/audio"
)

// streamParams are the raw-audio query parameters the listen endpoint
// accepts.
type streamParams struct {
	encoding   string
	sampleRate int
}

var supportedRates = map[int]bool{
	8000:  true,
	16000: true,
	24000: true,
	32000: true,
	48000: true,
}

// Companded telephony formats are only accepted at 8kHz.
var telephonyOnly = map[string]bool{
	audio.EncodingALaw.Name():  true,
	audio.EncodingMulaw.Name(): true,
}

func streamParamsFor(info audio.EncodingInfo) (streamParams, error) {
	params := streamParams{sampleRate: info.SampleRate}

	switch info.Format {
	case audio.EncodingLinear16, audio.EncodingALaw, audio.EncodingMulaw:
		params.encoding = info.Format.Name()
	default:
		return streamParams{}, fmt.Errorf("unsupported encoding %q", info.Format.Name())
	}

	if !supportedRates[params.sampleRate] {
		return streamParams{}, fmt.Errorf("unsupported sample rate %d", params.sampleRate)
	}
	if telephonyOnly[params.encoding] && params.sampleRate != 8000 {
		return streamParams{}, fmt.Errorf("%s encoding requires an 8000Hz sample rate", params.encoding)
	}

	return params, nil
}
