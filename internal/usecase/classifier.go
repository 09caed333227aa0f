package usecase

import (
	"strings"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

var (
	coldWords = []string{"test", "testing", "just checking", "wrong", "mistake", "ignore"}
	hotWords  = []string{"fees", "price", "membership", "join", "trial", "visit", "location", "timing", "book"}

	// Asking about any of these makes a lead at least WARM.
	businessInfoWords = []string{"fees", "timings", "location", "review", "transform"}
)

// ClassifyLead scores a message. Matching is by substring on the
// lowercased, trimmed message.
func ClassifyLead(message string, state entity.DialogueState) entity.Tier {
	msg := strings.ToLower(strings.TrimSpace(message))

	tier := scoreKeywords(msg)

	if state == entity.StateAskName || state == entity.StateAskVisitTime {
		tier = entity.TierHot
	}

	if tier == entity.TierCold && containsAny(msg, businessInfoWords) {
		tier = entity.TierWarm
	}

	return tier
}

func scoreKeywords(msg string) entity.Tier {
	if containsAny(msg, coldWords) {
		return entity.TierCold
	}

	score := 0
	for _, w := range hotWords {
		if strings.Contains(msg, w) {
			score++
		}
	}

	switch {
	case score >= 2:
		return entity.TierHot
	case score == 1:
		return entity.TierWarm
	default:
		return entity.TierCold
	}
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
