package huggingface

// Config contains Hugging Face Inference API configuration.
type Config struct {
	APIKey  string `env:"HUGGINGFACE_API_KEY"`
	BaseURL string `env:"HUGGINGFACE_BASE_URL" envDefault:"https://api-inference.huggingface.co/models"`
	Timeout int    `env:"HUGGINGFACE_TIMEOUT"  envDefault:"30"`
}

// Configured reports whether the provider has credentials.
func (c Config) Configured() bool {
	return c.APIKey != ""
}
