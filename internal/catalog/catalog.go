// Package catalog holds the static model catalog used by the comparison
// tool: which models each provider exposes and how they are classified.
package catalog

import "strings"

// ModelType classifies how a model was trained.
type ModelType string

const (
	// Base models ship with pre-training only.
	Base ModelType = "base"

	// Instruct models are instruction-tuned.
	Instruct ModelType = "instruct"

	// FineTuned models are tuned on a narrower task or dataset.
	FineTuned ModelType = "fine-tuned"
)

// All matches every provider or model type in a filter.
const All = "all"

// Entry describes one comparable model.
type Entry struct {
	Provider      string
	Model         string
	Type          ModelType
	ContextWindow int
	Description   string
}

// Default returns the built-in catalog, in presentation order.
func Default() []Entry {
	return []Entry{
		{Provider: "openai", Model: "davinci-002", Type: Base, ContextWindow: 16384, Description: "GPT base model, pre-training only"},
		{Provider: "openai", Model: "gpt-3.5-turbo", Type: Instruct, ContextWindow: 16385, Description: "Fast instruction-tuned chat model"},
		{Provider: "openai", Model: "gpt-4o", Type: Instruct, ContextWindow: 128000, Description: "Flagship multimodal chat model"},
		{Provider: "openai", Model: "gpt-3.5-turbo-instruct", Type: FineTuned, ContextWindow: 4096, Description: "Completion-style tuned variant"},
		{Provider: "anthropic", Model: "claude-3-5-sonnet-20241022", Type: Instruct, ContextWindow: 200000, Description: "Balanced Claude model"},
		{Provider: "anthropic", Model: "claude-3-5-haiku-20241022", Type: Instruct, ContextWindow: 200000, Description: "Fast Claude model"},
		{Provider: "huggingface", Model: "gpt2", Type: Base, ContextWindow: 1024, Description: "Classic GPT-2 base model"},
		{Provider: "huggingface", Model: "mistralai/Mistral-7B-Instruct-v0.2", Type: Instruct, ContextWindow: 32768, Description: "Open-weights instruct model"},
		{Provider: "huggingface", Model: "HuggingFaceH4/zephyr-7b-beta", Type: FineTuned, ContextWindow: 32768, Description: "DPO fine-tune of Mistral-7B"},
	}
}

// Filter selects entries by provider and model type. "all" (or empty)
// matches everything. Order of the input is preserved.
func Filter(entries []Entry, provider, modelType string) []Entry {
	provider = normalize(provider)
	modelType = normalize(modelType)

	selected := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if provider != All && entry.Provider != provider {
			continue
		}
		if modelType != All && string(entry.Type) != modelType {
			continue
		}
		selected = append(selected, entry)
	}
	return selected
}

// ValidModelType reports whether the value is a known filter.
func ValidModelType(value string) bool {
	switch normalize(value) {
	case All, string(Base), string(Instruct), string(FineTuned):
		return true
	}
	return false
}

// ValidProvider reports whether the value is a known provider filter.
func ValidProvider(value string) bool {
	switch normalize(value) {
	case All, "openai", "anthropic", "huggingface":
		return true
	}
	return false
}

func normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return All
	}
	// Accept the underscore spelling used by some configs.
	return strings.ReplaceAll(value, "_", "-")
}
