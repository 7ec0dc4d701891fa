package domain

import "time"

// Capability describes what kind of input a chain entry accepts.
type Capability string

const (
	// CapabilityVision marks entries that accept an image alongside the prompt.
	CapabilityVision Capability = "vision"

	// CapabilityText marks text-only entries. These are always eligible and
	// serve as the terminal fallback of a chain.
	CapabilityText Capability = "text"
)

// GenerationRequest represents a single provider invocation.
// It is constructed per call and never mutated afterwards.
type GenerationRequest struct {
	Prompt      string
	ImageBase64 string // base64-encoded image payload, empty for text-only requests
	ImageType   string // MIME type of the image payload, e.g. "image/jpeg"
	Model       string
	MaxTokens   int
	Temperature float64
}

// HasImage reports whether the request carries an image payload.
func (r *GenerationRequest) HasImage() bool {
	return r != nil && r.ImageBase64 != ""
}

// GenerationResult is the outcome of exactly one provider call.
// ErrorKind is empty on success; a failed fan-out cell keeps the zero
// Answer and carries the kind instead.
type GenerationResult struct {
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Answer           string    `json:"answer"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	LatencySeconds   float64   `json:"latency_seconds"`
	UsedFallback     bool      `json:"used_fallback"`
	ErrorKind        ErrorKind `json:"error,omitempty"`
}

// TotalTokens returns prompt plus completion tokens.
func (r *GenerationResult) TotalTokens() int {
	return r.PromptTokens + r.CompletionTokens
}

// ChainEntry is one step of a fallback chain.
type ChainEntry struct {
	Provider    string
	Model       string
	Capability  Capability
	MaxTokens   int
	Temperature float64
}

// FallbackChain is an ordered list of entries tried in sequence.
// Chain order is authoritative; entries are never reordered by latency
// or cost. Loaded once at startup and read-only afterwards.
type FallbackChain []ChainEntry

// Validate checks the chain invariant: at least one entry, every entry
// well-formed, and the terminal entry text-only so the chain is always
// eligible regardless of input shape.
func (c FallbackChain) Validate() error {
	if len(c) == 0 {
		return ErrEmptyChain
	}
	for _, entry := range c {
		if entry.Provider == "" || entry.Model == "" {
			return ErrInvalidChainEntry
		}
		if entry.Capability != CapabilityVision && entry.Capability != CapabilityText {
			return ErrInvalidChainEntry
		}
	}
	if c[len(c)-1].Capability != CapabilityText {
		return ErrNoTextFallback
	}
	return nil
}

// Attempt records one step of a fallback run: which entry was tried,
// whether it was skipped for capability reasons, and how it failed.
type Attempt struct {
	Provider string        `json:"provider"`
	Model    string        `json:"model"`
	Skipped  bool          `json:"skipped,omitempty"`
	Kind     ErrorKind     `json:"error,omitempty"`
	Latency  time.Duration `json:"latency,omitempty"`
}

// FallbackOutcome is the full record of a fallback run. Result is never
// nil: if every entry failed it holds the synthetic system-fallback answer.
type FallbackOutcome struct {
	Result   *GenerationResult
	Attempts []Attempt
}

// FanoutTarget names one (provider, model) pair queried by the fan-out
// orchestrator. ModelType is an opaque label carried through for
// presentation (base / instruct / fine-tuned in the comparison tool).
type FanoutTarget struct {
	Provider    string
	Model       string
	ModelType   string
	MaxTokens   int
	Temperature float64
}

// ComparisonCell pairs a fan-out target with its settled result.
type ComparisonCell struct {
	Target FanoutTarget     `json:"target"`
	Result GenerationResult `json:"result"`
}

// ComparisonMatrix holds fan-out results in the original target order,
// regardless of completion order. Built fresh per query.
type ComparisonMatrix struct {
	Query string           `json:"query"`
	Cells []ComparisonCell `json:"cells"`
}
