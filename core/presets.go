package orchestration

// Preset names a pairing of completion models: one for reply generation,
// one for suggestion generation. Presets trade reply quality against cost
// and latency.
type Preset string

const (
	PresetHigh   Preset = "high"
	PresetMedium Preset = "medium"
	PresetLow    Preset = "low"
)

// ModelPair holds the completion model identifiers a preset maps to.
type ModelPair struct {
	ReplyModel      string
	SuggestionModel string
}

var presetModels = map[Preset]ModelPair{
	PresetHigh:   {ReplyModel: "gpt-4o", SuggestionModel: "gpt-4o"},
	PresetMedium: {ReplyModel: "gpt-4o", SuggestionModel: "gpt-4o-mini"},
	PresetLow:    {ReplyModel: "gpt-4o-mini", SuggestionModel: "gpt-4o-mini"},
}

// LookupPreset resolves a preset to its model pair, reporting whether the
// preset is known.
func LookupPreset(p Preset) (ModelPair, bool) {
	pair, ok := presetModels[p]
	return pair, ok
}

// Presets lists the known presets in descending capability order.
func Presets() []Preset {
	return []Preset{PresetHigh, PresetMedium, PresetLow}
}
