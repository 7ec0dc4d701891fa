package anthropic

// Config contains Anthropic provider configuration.
type Config struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	BaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com/v1"`
	Timeout int    `env:"ANTHROPIC_TIMEOUT"  envDefault:"30"`
}

// Configured reports whether the provider has credentials.
func (c Config) Configured() bool {
	return c.APIKey != ""
}
