package dto

// SummaryItem is the (title, text) pair fed into batch summarization.
// It carries no note identifiers; the summarizer works purely on text.
type SummaryItem struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type SummarizeRequest struct {
	Content string `json:"content" validate:"required"`
}

type BulkSummarizeRequest struct {
	Notes []SummaryItem `json:"notes" validate:"required,min=1,dive"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}
