package main

import (
	"fmt"
	"os"
	"strings"
)

// Each API key persists in its own one-line file next to the executable.
// Environment variables take precedence over the files.
const (
	deepgramKeyFile = "deepgramapi.txt"
	openaiKeyFile   = "openaiapi.txt"
)

type credentials struct {
	DeepgramKey string
	OpenAIKey   string
}

func (c credentials) complete() bool {
	return c.DeepgramKey != "" && c.OpenAIKey != ""
}

func loadCredentials() credentials {
	creds := credentials{
		DeepgramKey: os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
	}

	if creds.DeepgramKey == "" {
		creds.DeepgramKey = readKeyFile(deepgramKeyFile)
	}
	if creds.OpenAIKey == "" {
		creds.OpenAIKey = readKeyFile(openaiKeyFile)
	}
	return creds
}

func storeCredentials(creds credentials) error {
	if err := os.WriteFile(deepgramKeyFile, []byte(creds.DeepgramKey+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to store speech service key: %w", err)
	}
	if err := os.WriteFile(openaiKeyFile, []byte(creds.OpenAIKey+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to store completion service key: %w", err)
	}
	return nil
}

func readKeyFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
