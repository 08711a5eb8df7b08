package nvidia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quicknote-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestChat(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "A summary."}},
			},
		})
	}))
	defer srv.Close()

	p := NewNvidiaProvider("test-key", srv.URL, "")
	out, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "be brief"},
			{Role: "model", Content: "prior turn"},
			{Role: "user", Content: "summarize this"},
		},
		llm.WithTemperature(0.2),
		llm.WithTopP(0.7),
		llm.WithMaxTokens(200),
	)
	assert.NoError(t, err)
	assert.Equal(t, "A summary.", out)

	assert.Equal(t, DefaultModel, gotReq.Model)
	assert.Equal(t, 0.2, gotReq.Temperature)
	assert.Equal(t, 0.7, gotReq.TopP)
	assert.Equal(t, 200, gotReq.MaxTokens)
	if assert.Len(t, gotReq.Messages, 3) {
		// "model" role is translated to the OpenAI-compatible "assistant"
		assert.Equal(t, "assistant", gotReq.Messages[1].Role)
	}
}

func TestChatNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewNvidiaProvider("bad-key", srv.URL, "")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	p := NewNvidiaProvider("key", srv.URL, "")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestGenerateWrapsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "just this", req.Messages[0].Content)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	p := NewNvidiaProvider("key", srv.URL, "custom-model")
	out, err := p.Generate(context.Background(), "just this")
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
}
