package lineup

// Classify grades a lineup. Fallback always wins; otherwise the combined
// resolved count decides between Confirmed and Predicted. A non-positive
// threshold uses DefaultConfirmedThreshold.
func Classify(home, away []Entry, isFallback bool, threshold int) Confidence {
	if threshold <= 0 {
		threshold = DefaultConfirmedThreshold
	}
	if isFallback {
		return ConfidenceFallback
	}

	total := len(home) + len(away)
	switch {
	case total >= threshold:
		return ConfidenceConfirmed
	case total > 0:
		return ConfidencePredicted
	default:
		return ConfidenceFallback
	}
}
