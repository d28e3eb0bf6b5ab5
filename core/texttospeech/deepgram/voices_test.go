package deepgram

import "testing"

func TestVoiceForLocale(t *testing.T) {
	cases := []struct {
		locale string
		voice  string
	}{
		{"en-US", defaultVoice},
		{"en-GB", "aura-2-draco-en"},
		{"es-ES", "aura-2-celeste-es"},
		{"es-MX", "aura-2-celeste-es"}, // language fallback
		{"fr-FR", defaultVoice},        // unlisted locale
		{"", defaultVoice},
	}

	for _, tc := range cases {
		if voice := voiceForLocale(tc.locale); voice != tc.voice {
			t.Errorf("locale %q: expected voice %q, got %q", tc.locale, tc.voice, voice)
		}
	}
}

func TestGetAvailableVoicesHasNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, voice := range GetAvailableVoices() {
		if seen[voice] {
			t.Fatalf("duplicate voice %q", voice)
		}
		seen[voice] = true
	}
}
