package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quicknote-be/internal/dto"
	"quicknote-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	chatFn func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
	calls  int
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.chatFn(ctx, history, options...)
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestSummarizeOne(t *testing.T) {
	var gotHistory []llm.Message
	var gotOpts llm.Options
	provider := &fakeProvider{
		chatFn: func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
			gotHistory = history
			for _, o := range options {
				o(&gotOpts)
			}
			return "  A concise summary.  \n", nil
		},
	}
	svc := NewSummaryService(provider, nopLogger{})

	summary, err := svc.SummarizeOne(context.Background(), "some note content")
	assert.NoError(t, err)
	assert.Equal(t, "A concise summary.", summary)

	if assert.Len(t, gotHistory, 2) {
		assert.Equal(t, "system", gotHistory[0].Role)
		assert.Equal(t, "user", gotHistory[1].Role)
		assert.Contains(t, gotHistory[1].Content, "some note content")
		assert.Contains(t, gotHistory[1].Content, "1-2 sentences")
	}
	assert.Equal(t, 0.2, gotOpts.Temperature)
	assert.Equal(t, 0.7, gotOpts.TopP)
	assert.Equal(t, 200, gotOpts.MaxTokens)
}

func TestSummarizeOnePropagatesError(t *testing.T) {
	provider := &fakeProvider{
		chatFn: func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
			return "", errors.New("upstream timeout")
		},
	}
	svc := NewSummaryService(provider, nopLogger{})

	_, err := svc.SummarizeOne(context.Background(), "text")
	assert.Error(t, err)
}

func TestSummarizeNotConfigured(t *testing.T) {
	svc := NewSummaryService(nil, nopLogger{})

	_, err := svc.SummarizeOne(context.Background(), "text")
	assert.ErrorIs(t, err, ErrSummarizerNotConfigured)

	_, err = svc.SummarizeMany(context.Background(), []dto.SummaryItem{{Title: "A", Content: "a"}})
	assert.ErrorIs(t, err, ErrSummarizerNotConfigured)
}

func TestSummarizeManyOrderAndFallback(t *testing.T) {
	// The middle item fails; its line degrades to the fallback while the
	// batch continues in input order.
	provider := &fakeProvider{
		chatFn: func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
			content := history[len(history)-1].Content
			if strings.Contains(content, "broken content") {
				return "", errors.New("model refused")
			}
			if strings.Contains(content, "first content") {
				return "First summary.", nil
			}
			return "Third summary.", nil
		},
	}
	svc := NewSummaryService(provider, nopLogger{})

	items := []dto.SummaryItem{
		{Title: "Alpha", Content: "first content"},
		{Title: "Beta", Content: "broken content"},
		{Title: "Gamma", Content: "third content"},
	}
	combined, err := svc.SummarizeMany(context.Background(), items)
	assert.NoError(t, err)

	want := "• Alpha: First summary.\n\n• Beta: Unable to summarize this note.\n\n• Gamma: Third summary."
	assert.Equal(t, want, combined)
	assert.Equal(t, 3, provider.calls)
}

func TestSummarizeManyOneRequestPerItem(t *testing.T) {
	var maxTokensSeen []int
	provider := &fakeProvider{
		chatFn: func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
			var opts llm.Options
			for _, o := range options {
				o(&opts)
			}
			maxTokensSeen = append(maxTokensSeen, opts.MaxTokens)
			return "ok", nil
		},
	}
	svc := NewSummaryService(provider, nopLogger{})

	items := []dto.SummaryItem{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}
	_, err := svc.SummarizeMany(context.Background(), items)
	assert.NoError(t, err)
	assert.Equal(t, []int{100, 100}, maxTokensSeen)
}

func TestSummarizeManyEmpty(t *testing.T) {
	provider := &fakeProvider{
		chatFn: func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
			return "ok", nil
		},
	}
	svc := NewSummaryService(provider, nopLogger{})

	combined, err := svc.SummarizeMany(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "", combined)
	assert.Equal(t, 0, provider.calls)
}
