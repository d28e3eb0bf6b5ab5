package orchestration

import "testing"

func TestLookupPreset(t *testing.T) {
	for _, preset := range Presets() {
		pair, ok := LookupPreset(preset)
		if !ok {
			t.Fatalf("preset %q not found", preset)
		}
		if pair.ReplyModel == "" || pair.SuggestionModel == "" {
			t.Fatalf("preset %q has empty models: %+v", preset, pair)
		}
	}
}

func TestLookupUnknownPreset(t *testing.T) {
	if _, ok := LookupPreset(Preset("ultra")); ok {
		t.Fatalf("expected unknown preset lookup to fail")
	}
}
