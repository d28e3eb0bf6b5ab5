package llms

// PromptOptions configure completion requests across vendors.
type PromptOptions struct {
	// Instructions is the system prompt prepended to every request.
	Instructions string
	Temperature  *float64
	MaxTokens    *int
}

type PromptOption func(*PromptOptions)

func WithInstructions(instructions string) PromptOption {
	return func(o *PromptOptions) { o.Instructions = instructions }
}

func WithTemperature(temperature float64) PromptOption {
	return func(o *PromptOptions) { o.Temperature = &temperature }
}

func WithMaxTokens(maxTokens int) PromptOption {
	return func(o *PromptOptions) { o.MaxTokens = &maxTokens }
}
