package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kaleido-ai/kaleido/internal/config"
	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/image"
	"github.com/kaleido-ai/kaleido/internal/observability"
)

// AnswerResponse is the JSON body returned by the QA endpoints.
type AnswerResponse struct {
	Answer         string  `json:"answer"`
	ModelUsed      string  `json:"model_used"`
	ProcessingTime float64 `json:"processing_time"`
	FallbackUsed   bool    `json:"fallback_used"`
	Error          string  `json:"error,omitempty"`
}

// analyzeURLRequest is the JSON body accepted by POST /analyze-url.
type analyzeURLRequest struct {
	Question string `json:"question"`
	ImageURL string `json:"image_url"`
}

// ProviderCredentials reports which providers hold API keys, for /status.
type ProviderCredentials struct {
	OpenAI      bool `json:"openai"`
	Anthropic   bool `json:"anthropic"`
	HuggingFace bool `json:"huggingface"`
}

// Handler handles HTTP requests for the QA backend.
type Handler struct {
	fallback    *domain.FallbackService
	registry    domain.ProviderRegistry
	fetcher     *image.Fetcher
	upload      config.UploadConfig
	credentials ProviderCredentials
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	fallback *domain.FallbackService,
	registry domain.ProviderRegistry,
	fetcher *image.Fetcher,
	uploadCfg *config.UploadConfig,
	credentials ProviderCredentials,
) *Handler {
	return &Handler{
		fallback:    fallback,
		registry:    registry,
		fetcher:     fetcher,
		upload:      *uploadCfg,
		credentials: credentials,
	}
}

// HandleUpload processes POST /upload: multipart image file plus question.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	question := r.FormValue("question")
	if err := validateQuestion(question); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := image.ReadLimited(file, h.upload.MaxFileSizeBytes())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType, err := image.Sniff(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.answer(w, r, start, question, base64.StdEncoding.EncodeToString(data), contentType)
}

// HandleAnalyzeURL processes POST /analyze-url: question plus image URL.
func (h *Handler) HandleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req analyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateQuestion(req.Question); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.answer(w, r, start, req.Question, base64.StdEncoding.EncodeToString(payload.Data), payload.ContentType)
}

// answer runs the fallback chain and writes the JSON response.
func (h *Handler) answer(w http.ResponseWriter, r *http.Request, start time.Time, question, imageBase64, imageType string) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	outcome, err := h.fallback.Answer(ctx, question, imageBase64, imageType)
	if err != nil {
		// Only invalid input reaches here; the chain itself is total.
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := outcome.Result
	logger.Info("question answered",
		observability.String("provider", result.Provider),
		observability.String("model", result.Model),
		observability.Bool("fallback_used", result.UsedFallback),
		observability.Int("attempts", len(outcome.Attempts)),
	)

	respondJSON(w, http.StatusOK, AnswerResponse{
		Answer:         result.Answer,
		ModelUsed:      result.Model,
		ProcessingTime: time.Since(start).Seconds(),
		FallbackUsed:   result.UsedFallback,
		Error:          string(result.ErrorKind),
	})
}

// HandleStatus reports provider credential state and the configured chain.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	registered, err := h.registry.List(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	modelCounts := make(map[string]int, len(registered))
	for _, name := range registered {
		provider, err := h.registry.Get(ctx, name)
		if err != nil {
			continue
		}
		modelCounts[name] = len(provider.SupportedModels(ctx))
	}

	chain := h.fallback.Chain()
	entries := make([]map[string]string, 0, len(chain))
	for _, entry := range chain {
		entries = append(entries, map[string]string{
			"provider":   entry.Provider,
			"model":      entry.Model,
			"capability": string(entry.Capability),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"providers_configured": h.credentials,
		"providers_registered": registered,
		"model_counts":         modelCounts,
		"fallback_chain":       entries,
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func validateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
