package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestWithModel_KeepsTemperature(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}, Temperature: 0.7}
	assert.Equal(t, float32(0.7), config.WithModel(TierLite, "m").Temperature)
}

func TestDefaultConfig_Temperature(t *testing.T) {
	assert.Equal(t, DefaultTemperature, DefaultConfig().Temperature)
}

func TestParseTier(t *testing.T) {
	for in, want := range map[string]ModelTier{
		"":         TierLite,
		"lite":     TierLite,
		"standard": TierStandard,
		"advanced": TierAdvanced,
	} {
		got, err := ParseTier(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseTier("ultra")
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Five years "), genai.Text("at Acme.\n")}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	assert.NoError(t, err)
	assert.Equal(t, "Five years at Acme.", text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}},
	})
	assert.ErrorAs(t, err, &apiErr)
}
