package question

import "testing"

func TestTechnical_Keywords(t *testing.T) {
	technical := []string{
		"Explain how a B-tree index speeds up range queries.",
		"What is the time COMPLEXITY of quicksort in the worst case?",
		"How would you optimize this query?",
		"Walk me through the trade-off between consistency and availability.",
		"Write pseudocode for a rate limiter.",
	}
	for _, q := range technical {
		if !Technical(q) {
			t.Errorf("expected technical: %q", q)
		}
	}
}

func TestTechnical_Generic(t *testing.T) {
	generic := []string{
		"Tell me about yourself.",
		"What are your strengths?",
		"Where do you see yourself in five years?",
	}
	for _, q := range generic {
		if Technical(q) {
			t.Errorf("expected non-technical: %q", q)
		}
	}
}
