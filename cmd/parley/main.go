package main

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/audio/miniaudio"
	sttdeepgram "github.com/parleylabs/parley/core/speechtotext/deepgram"
	ttsdeepgram "github.com/parleylabs/parley/core/texttospeech/deepgram"

	"github.com/parleylabs/parley/core/llms/openai"
)

func main() {
	creds := loadCredentials()
	if !creds.complete() {
		entered, err := runKeyEntry(creds)
		if err != nil {
			log.Fatalf("API keys are required: %v", err)
		}
		creds = entered
		if err := storeCredentials(creds); err != nil {
			log.Println("Warning: failed to persist API keys:", err)
		}
	}

	audioClient, err := miniaudio.NewClient()
	if err != nil {
		log.Fatalf("Failed to open audio devices: %v", err)
	}
	defer audioClient.Close()

	recognizer, err := sttdeepgram.NewRecognizer(creds.DeepgramKey, audioClient)
	if err != nil {
		log.Fatalf("Failed to build recognizer: %v", err)
	}
	synthesizer, err := ttsdeepgram.NewSynthesizer(creds.DeepgramKey, audioClient)
	if err != nil {
		log.Fatalf("Failed to build synthesizer: %v", err)
	}
	completion, err := openai.NewClient(creds.OpenAIKey)
	if err != nil {
		log.Fatalf("Failed to build completion client: %v", err)
	}
	suggester, err := openai.NewSuggestionClient(creds.OpenAIKey)
	if err != nil {
		log.Fatalf("Failed to build suggestion client: %v", err)
	}

	orchestrator := orchestration.NewOrchestrator(
		orchestration.WithSpeechToText(recognizer),
		orchestration.WithTextCompletion(completion),
		orchestration.WithSuggestionCompletion(suggester),
		orchestration.WithTextToSpeech(synthesizer),
		orchestration.WithStageTimeout(2*time.Minute),
	)
	defer orchestrator.Close()

	if _, err := tea.NewProgram(newChatModel(orchestrator), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
