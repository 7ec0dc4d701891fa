package openai

// SupportedModels returns the models served through the OpenAI provider.
func SupportedModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
		"gpt-3.5-turbo-instruct",
		"davinci-002",
		"babbage-002",
	}
}
