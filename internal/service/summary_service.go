package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quicknote-be/internal/constant"
	"quicknote-be/internal/dto"
	"quicknote-be/internal/pkg/logger"
	"quicknote-be/pkg/llm"
)

// ErrSummarizerNotConfigured is returned when no completion provider is
// available (e.g. missing API key). It is a precondition failure for the
// whole request, never a per-item one.
var ErrSummarizerNotConfigured = errors.New("summarization service is not configured")

// FallbackSummary replaces a single note's summary when its request fails
// inside a batch. The batch itself continues.
const FallbackSummary = "Unable to summarize this note."

// Generation budgets per mode. Single mode gets a longer output budget than
// each item inside a batch.
const (
	summaryTemperature = 0.2
	summaryTopP        = 0.7
	singleMaxTokens    = 200
	batchItemMaxTokens = 100
)

type ISummaryService interface {
	// SummarizeOne produces a 1-2 sentence summary of the given text.
	SummarizeOne(ctx context.Context, text string) (string, error)

	// SummarizeMany summarizes each (title, content) pair with one request
	// per item, strictly sequentially, and folds the results into bullet
	// lines joined by blank lines. A failing item degrades to the fallback
	// line; only a missing provider fails the whole call.
	SummarizeMany(ctx context.Context, items []dto.SummaryItem) (string, error)
}

type summaryService struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewSummaryService(provider llm.LLMProvider, log logger.ILogger) ISummaryService {
	return &summaryService{
		provider: provider,
		log:      log,
	}
}

func (s *summaryService) SummarizeOne(ctx context.Context, text string) (string, error) {
	if s.provider == nil {
		return "", ErrSummarizerNotConfigured
	}

	summary, err := s.complete(ctx, text, singleMaxTokens)
	if err != nil {
		s.log.Error("summary_service", "summarization request failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return summary, nil
}

func (s *summaryService) SummarizeMany(ctx context.Context, items []dto.SummaryItem) (string, error) {
	// Fatal precondition, checked once before the loop starts.
	if s.provider == nil {
		return "", ErrSummarizerNotConfigured
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		// Strictly sequential: the next request is not issued until this
		// item's outcome has been folded in, so line order matches input
		// order and at most one request is in flight.
		summary, err := s.complete(ctx, item.Content, batchItemMaxTokens)
		if err != nil {
			s.log.Warn("summary_service", "item summarization failed, using fallback", map[string]interface{}{
				"title": item.Title,
				"error": err.Error(),
			})
			summary = FallbackSummary
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", item.Title, summary))
	}

	return strings.Join(lines, "\n\n"), nil
}

func (s *summaryService) complete(ctx context.Context, text string, maxTokens int) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: constant.SummarySystemPrompt},
		{Role: "user", Content: fmt.Sprintf(constant.SummarizeUserPromptFormat, text)},
	}

	res, err := s.provider.Chat(ctx, history,
		llm.WithTemperature(summaryTemperature),
		llm.WithTopP(summaryTopP),
		llm.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res), nil
}
