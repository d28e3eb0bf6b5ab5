package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/audio"
	"github.com/parleylabs/parley/core/speechtotext"
)

const (
	defaultModel            = "nova-3"
	defaultSilenceThreshold = time.Second
)

// Recognizer captures one utterance from an audio source and transcribes
// it through the Deepgram live websocket. It implements the orchestrator's
// SpeechToText contract.
type Recognizer struct {
	apiKey  string
	source  audio.Source
	options speechtotext.RecognitionOptions
}

// NewRecognizer builds a recognizer over the given audio source. An empty
// apiKey falls back to the DEEPGRAM_API_KEY environment variable.
func NewRecognizer(apiKey string, source audio.Source, opts ...speechtotext.RecognitionOption) (*Recognizer, error) {
	if apiKey == "" {
		key, ok := os.LookupEnv("DEEPGRAM_API_KEY")
		if !ok {
			return nil, fmt.Errorf("deepgram api key not found")
		}
		apiKey = key
	}
	if source == nil {
		return nil, fmt.Errorf("audio source is required")
	}

	options := speechtotext.RecognitionOptions{
		EncodingInfo:     source.EncodingInfo(),
		SilenceThreshold: defaultSilenceThreshold,
		Model:            defaultModel,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Recognizer{apiKey: apiKey, source: source, options: options}, nil
}

// RecognizeOnce streams microphone audio to Deepgram until the utterance
// ends and returns the accumulated final transcript.
func (r *Recognizer) RecognizeOnce(ctx context.Context, locale string) (string, error) {
	params, err := streamParamsFor(r.options.EncodingInfo)
	if err != nil {
		return "", orchestration.NewRecognitionError(orchestration.RecognitionDeviceUnavailable,
			fmt.Errorf("invalid encoding: %w", err))
	}

	conn, err := r.connectWebsocket(params, locale)
	if err != nil {
		return "", orchestration.NewRecognitionError(orchestration.RecognitionServiceUnreachable, err)
	}
	defer conn.Close()

	transcripts := make(chan string, 1)
	go readTranscript(conn, transcripts)

	var connMu sync.Mutex
	if err := r.source.StartCapture(func(frame []byte) {
		connMu.Lock()
		defer connMu.Unlock()
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Println("Failed to write to deepgram socket:", err)
		}
	}); err != nil {
		return "", orchestration.NewRecognitionError(orchestration.RecognitionDeviceUnavailable,
			fmt.Errorf("failed to start capture: %w", err))
	}
	defer func() {
		if err := r.source.StopCapture(); err != nil {
			log.Println("Failed to stop capture:", err)
		}
	}()

	select {
	case transcript := <-transcripts:
		if strings.TrimSpace(transcript) == "" {
			return "", orchestration.NewRecognitionError(orchestration.RecognitionNoSpeech, nil)
		}
		return transcript, nil

	case <-ctx.Done():
		connMu.Lock()
		closeStream(conn)
		connMu.Unlock()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", orchestration.NewRecognitionError(orchestration.RecognitionNoSpeech, ctx.Err())
		}
		return "", orchestration.NewRecognitionError(orchestration.RecognitionServiceUnreachable, ctx.Err())
	}
}

func (r *Recognizer) connectWebsocket(params streamParams, language string) (*websocket.Conn, error) {
	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", params.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(params.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", r.options.Model)
	queryParams.Set("language", language)
	queryParams.Set("smart_format", "true")
	queryParams.Set("interim_results", "true")
	queryParams.Set("utterance_end_ms", strconv.Itoa(int(r.options.SilenceThreshold.Milliseconds())))
	queryParams.Set("endpointing", "300")
	queryParams.Set("vad_events", "true")

	listenUrl.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + r.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func closeStream(conn *websocket.Conn) {
	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		log.Println("Failed to close deepgram stream:", err)
	}
}

// readTranscript accumulates is_final transcript segments and resolves the
// channel once the utterance ends or the socket closes.
func readTranscript(conn *websocket.Conn, transcripts chan<- string) {
	var accumulated string
	resolve := func() {
		select {
		case transcripts <- strings.TrimSpace(accumulated):
		default:
		}
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if err.Error() != "websocket: close 1000 (normal)" {
				log.Println("Failed to read deepgram websocket message:", err)
			}
			resolve()
			return
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		var parsedMsg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &parsedMsg); err != nil {
			log.Println("Failed to unmarshal deepgram message:", err)
			continue
		}

		switch api.TypeResponse(parsedMsg.Type) {
		case api.TypeMessageResponse:
			var msgResp api.MessageResponse
			if err := json.Unmarshal(msg, &msgResp); err != nil {
				log.Println("Failed to unmarshal deepgram message:", err)
				continue
			}
			if !msgResp.IsFinal || len(msgResp.Channel.Alternatives) == 0 {
				continue
			}

			transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
			if len(transcript) > 0 {
				accumulated += " " + transcript
			}
			if msgResp.SpeechFinal && strings.TrimSpace(accumulated) != "" {
				resolve()
				return
			}

		case api.TypeUtteranceEndResponse:
			var msgResp api.UtteranceEndResponse
			if err := json.Unmarshal(msg, &msgResp); err != nil {
				log.Println("Failed to unmarshal deepgram message:", err)
				continue
			}
			resolve()
			return
		}
	}
}
