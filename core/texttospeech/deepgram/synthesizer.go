package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/audio"
	"github.com/parleylabs/parley/core/texttospeech"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const speakUrl = "https://api.deepgram.com/v1/speak"

// Synthesizer renders text through the Deepgram speak endpoint and plays
// the returned audio on a sink, blocking until playback completes. It
// implements the orchestrator's TextToSpeech contract.
//
// Aura voices cover English and Spanish locales; Speak falls back to the
// default English voice for any other locale unless WithVoice pins one.
type Synthesizer struct {
	apiKey  string
	sink    audio.Sink
	client  *http.Client
	options texttospeech.SynthesisOptions
}

// NewSynthesizer builds a synthesizer over the given playback sink. An
// empty apiKey falls back to the DEEPGRAM_API_KEY environment variable.
func NewSynthesizer(apiKey string, sink audio.Sink, opts ...texttospeech.SynthesisOption) (*Synthesizer, error) {
	if apiKey == "" {
		key, ok := os.LookupEnv("DEEPGRAM_API_KEY")
		if !ok {
			return nil, fmt.Errorf("deepgram api key not found")
		}
		apiKey = key
	}
	if sink == nil {
		return nil, fmt.Errorf("audio sink is required")
	}

	options := texttospeech.SynthesisOptions{EncodingInfo: sink.EncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	return &Synthesizer{
		apiKey:  apiKey,
		sink:    sink,
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		options: options,
	}, nil
}

// Speak synthesizes the text with a voice matching the locale and blocks
// until the audio played out.
func (s *Synthesizer) Speak(ctx context.Context, text string, locale string) error {
	voice := s.options.Voice
	if voice == "" {
		voice = voiceForLocale(locale)
	}

	rendered, err := s.synthesize(ctx, text, voice)
	if err != nil {
		return orchestration.NewSynthesisError(orchestration.SynthesisServiceUnreachable, err)
	}

	if err := s.sink.Play(ctx, rendered); err != nil {
		return orchestration.NewSynthesisError(orchestration.SynthesisDeviceUnavailable,
			fmt.Errorf("failed to play synthesized audio: %w", err))
	}
	return nil
}

func (s *Synthesizer) synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	requestBodyBytes, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}

	requestUrl, _ := url.Parse(speakUrl)
	queryParams := requestUrl.Query()
	queryParams.Set("model", voice)
	queryParams.Set("encoding", s.options.EncodingInfo.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(s.options.EncodingInfo.SampleRate))
	queryParams.Set("container", "none")
	requestUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestUrl.String(),
		bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}

	rendered, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return rendered, nil
}
