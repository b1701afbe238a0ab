package factory

import (
	"fmt"

	"ai-analytics-be/pkg/llm"
	"ai-analytics-be/pkg/llm/groq"
	"ai-analytics-be/pkg/llm/ollama"
)

// NewProvider builds the configured LLM backend. "none" disables the
// assisted tier entirely; the query engine then runs its deterministic
// fallback only.
func NewProvider(providerName, model, ollamaBaseURL, groqAPIKey string) (llm.Provider, error) {
	switch providerName {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "groq":
		if groqAPIKey == "" {
			return nil, fmt.Errorf("groq provider requires GROQ_API_KEY")
		}
		return groq.NewGroqProvider(groqAPIKey, model), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", providerName)
	}
}
