package deepgram

import "strings"

const defaultVoice = "aura-2-thalia-en"

// localeVoices maps language tags to Aura voice models. Unlisted locales
// fall back to the default English voice.
var localeVoices = map[string]string{
	"en":    defaultVoice,
	"en-US": defaultVoice,
	"en-GB": "aura-2-draco-en",
	"es":    "aura-2-celeste-es",
	"es-ES": "aura-2-celeste-es",
}

func voiceForLocale(locale string) string {
	if voice, ok := localeVoices[locale]; ok {
		return voice
	}
	if idx := strings.IndexByte(locale, '-'); idx > 0 {
		if voice, ok := localeVoices[locale[:idx]]; ok {
			return voice
		}
	}
	return defaultVoice
}

// GetAvailableVoices lists the voice models the adapter knows about.
func GetAvailableVoices() []string {
	voices := []string{}
	seen := map[string]bool{}
	for _, voice := range localeVoices {
		if !seen[voice] {
			seen[voice] = true
			voices = append(voices, voice)
		}
	}
	return voices
}
