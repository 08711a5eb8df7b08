package factory

import (
	"fmt"

	"quicknote-be/pkg/llm"
	"quicknote-be/pkg/llm/nvidia"
	"quicknote-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "nvidia":
		if apiKey == "" {
			return nil, fmt.Errorf("nvidia provider requires an api key")
		}
		return nvidia.NewNvidiaProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
