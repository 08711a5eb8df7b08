package constant

const (
	SummarySystemPrompt = "You are a helpful assistant that summarizes text concisely and accurately. Provide a clear, concise summary that captures the main points."

	// SummarizeUserPromptFormat takes the raw note content.
	SummarizeUserPromptFormat = "Please summarize the following text in 1-2 sentences (not bullet points):\n\n%s"
)
