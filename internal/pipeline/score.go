package pipeline

import (
	"strings"

	"github.com/sells-group/sales-agent/internal/model"
)

// Scoring signal keywords. A category contributes its points when any of its
// keywords appears as a substring of the lowercased conversation text.
var (
	budgetKeywords    = []string{"budget", "price", "cost", "$", "dollar", "afford", "pricing", "quote"}
	timelineKeywords  = []string{"quarter", "month", "week", "soon", "asap", "urgent", "timeline", "deadline", "when"}
	painKeywords      = []string{"problem", "issue", "challenge", "struggle", "slow", "difficult", "need", "want", "looking for"}
	authorityKeywords = []string{"we", "team", "company", "decision", "decide", "approve", "manager", "director", "ceo"}
)

// Engagement length thresholds over the combined raw text.
const (
	highEngagementLen     = 500
	moderateEngagementLen = 200
)

// ScoreLead scores a lead on a 1-100 scale from conversation indicators.
// Deterministic, no side effects: budget mention +25, clear timeline +20,
// pain points +20, decision authority +15, plus an engagement bonus from
// text length. The score is clamped to [1,100] and the tier derived from
// fixed thresholds (hot ≥70, warm ≥40).
func ScoreLead(transcript, emailBody string) model.LeadAnalysis {
	score := 0
	factors := make(map[string]bool)

	text := strings.ToLower(transcript + " " + emailBody)

	if containsAny(text, budgetKeywords...) {
		score += 25
		factors["budget_mentioned"] = true
	}
	if containsAny(text, timelineKeywords...) {
		score += 20
		factors["timeline_clear"] = true
	}
	if containsAny(text, painKeywords...) {
		score += 20
		factors["pain_points_clear"] = true
	}
	if containsAny(text, authorityKeywords...) {
		score += 15
		factors["authority_indicated"] = true
	}

	totalLength := len(transcript) + len(emailBody)
	if totalLength > highEngagementLen {
		score += 20
		factors["high_engagement"] = true
	} else if totalLength > moderateEngagementLen {
		score += 10
		factors["moderate_engagement"] = true
	}

	if score < 1 {
		score = 1
	}
	if score > 100 {
		score = 100
	}

	return model.LeadAnalysis{
		Score:   score,
		Tier:    leadTier(score),
		Factors: factors,
	}
}

// leadTier buckets a score into hot/warm/cold with fixed thresholds.
func leadTier(score int) string {
	switch {
	case score >= 70:
		return model.TierHot
	case score >= 40:
		return model.TierWarm
	default:
		return model.TierCold
	}
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
