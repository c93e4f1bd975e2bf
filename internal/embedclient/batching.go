package embedclient

// EstimateTokens is a cheap stand-in for a model-specific tokenizer: most
// code/BPE tokenizers average under 4 characters per token, so dividing
// rune count by 4 (rounding up) keeps batches comfortably under budget
// without linking a full tokenizer library the corpus never imports.
func EstimateTokens(text string) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// PackBatches greedily fills batches until the next text would exceed
// targetTokensPerBatch, per spec.md §4.4 "Batching". A single text whose own
// estimate exceeds the budget becomes its own batch rather than being split,
// matching "single texts longer than the budget form their own batch and are
// logged."
func PackBatches(texts []string, targetTokensPerBatch int) [][]string {
	if len(texts) == 0 {
		return nil
	}
	if targetTokensPerBatch <= 0 {
		targetTokensPerBatch = 2048
	}

	var batches [][]string
	var current []string
	currentTokens := 0

	for _, text := range texts {
		tokens := EstimateTokens(text)

		if tokens > targetTokensPerBatch {
			if len(current) > 0 {
				batches = append(batches, current)
				current = nil
				currentTokens = 0
			}
			batches = append(batches, []string{text})
			continue
		}

		if currentTokens+tokens > targetTokensPerBatch && len(current) > 0 {
			batches = append(batches, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, text)
		currentTokens += tokens
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

// OversizedBatches reports the indices of the batches that hold a single
// text whose own estimate exceeds the budget; Embed logs each of them
// (spec.md §4.4).
func OversizedBatches(batches [][]string, targetTokensPerBatch int) []int {
	var indices []int
	for i, b := range batches {
		if len(b) == 1 && EstimateTokens(b[0]) > targetTokensPerBatch {
			indices = append(indices, i)
		}
	}
	return indices
}
