// Package ratelimit turns raw upstream error text into a user-facing
// explanation and, when the provider included one, a retry hint.
package ratelimit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Classification is the result of inspecting an upstream error string.
type Classification struct {
	// Message is the user-facing text. For non-rate-limit errors this is
	// the original error text, passed through.
	Message string

	// RateLimited is true when the error looks like a rate limit.
	RateLimited bool

	// RetryAfter is the parsed wait duration. Valid only when HasWait is
	// true; providers often omit it.
	RetryAfter time.Duration
	HasWait    bool
}

// RetryAfterSeconds returns the wait in whole seconds, or -1 when unknown.
func (c Classification) RetryAfterSeconds() int {
	if !c.HasWait {
		return -1
	}
	return int(c.RetryAfter / time.Second)
}

var (
	waitPattern  = regexp.MustCompile(`try again in (\d+)m(\d+\.?\d*)s`)
	limitPattern = regexp.MustCompile(`Limit (\d+), Used (\d+)`)
)

// Classify inspects upstream error text and derives a user-facing message.
// It is a pure function: identical input yields identical output, and it
// never fails — unparseable detail falls through to a less specific rule.
func Classify(errorText string) Classification {
	if !looksRateLimited(errorText) {
		return Classification{Message: errorText}
	}

	// Most specific first: an explicit wait hint ("try again in 2m30.5s").
	if m := waitPattern.FindStringSubmatch(errorText); m != nil {
		minutes, errM := strconv.Atoi(m[1])
		secsFloat, errS := strconv.ParseFloat(m[2], 64)
		if errM == nil && errS == nil {
			seconds := int(secsFloat)
			total := time.Duration(minutes*60+seconds) * time.Second
			msg := fmt.Sprintf(
				"Rate limit reached. The model API has reached its daily token limit. "+
					"Please wait approximately %d minutes and %d seconds before continuing, "+
					"or upgrade your API tier.",
				minutes, seconds)
			return Classification{
				Message:     msg,
				RateLimited: true,
				RetryAfter:  total,
				HasWait:     true,
			}
		}
	}

	// Next: usage counts ("Limit 100000, Used 100000").
	if m := limitPattern.FindStringSubmatch(errorText); m != nil {
		msg := fmt.Sprintf(
			"Rate limit reached. The model API has reached its daily token limit "+
				"(Used: %s/%s). Please wait or upgrade your API tier.",
			m[2], m[1])
		return Classification{Message: msg, RateLimited: true}
	}

	return Classification{
		Message: "Rate limit reached. The model API has reached its daily token " +
			"limit. Please wait a few minutes or upgrade your API tier.",
		RateLimited: true,
	}
}

// looksRateLimited matches the markers providers put in rate limit errors.
func looksRateLimited(s string) bool {
	return strings.Contains(strings.ToLower(s), "rate_limit") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "Rate limit")
}
