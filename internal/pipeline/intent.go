package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/sales-agent/internal/model"
)

const intentPrompt = `Classify this message intent into EXACTLY ONE category:
1. sales_inquiry - Customer asking about product/pricing/features/services
2. performance_query - Customer asking "How are you doing?" or performance metrics/results
3. technical_question - Technical or product-specific questions about implementation
4. general_inquiry - General questions not fitting above categories

Message: %s

Return ONLY valid JSON with this exact structure:
{"intent": "sales_inquiry|performance_query|technical_question|general_inquiry", "confidence": 0.0-1.0}`

// Fallback keyword tables. Ordering matters: the sales check runs before the
// performance check, which runs before the technical check.
var (
	salesKeywords = []string{"price", "pricing", "cost", "quote", "buy", "purchase", "product", "service", "feature", "demo"}
	perfKeywords  = []string{"how are you", "performance", "results", "metrics", "doing", "status"}
	techKeywords  = []string{"how to", "implement", "technical", "api", "integration", "code", "setup"}
)

var validIntents = map[string]bool{
	model.IntentSalesInquiry:      true,
	model.IntentPerformanceQuery:  true,
	model.IntentTechnicalQuestion: true,
	model.IntentGeneralInquiry:    true,
}

// DetectIntent classifies the intent of a message. It prefers a single LLM
// completion returning strict JSON; on missing credentials, provider error,
// or unparsable output it falls back to rule-based detection. Never fails.
func (p *Pipeline) DetectIntent(ctx context.Context, text string) model.IntentResult {
	raw, err := p.complete(ctx, fmt.Sprintf(intentPrompt, text), 200, "intent")
	if err != nil {
		if p.ai != nil {
			zap.L().Warn("intent: completion failed, using rule-based fallback", zap.Error(err))
		}
		return fallbackIntent(text)
	}

	// The model may wrap its JSON in a fenced code block.
	var parsed struct {
		Intent     string   `json:"intent"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		zap.L().Warn("intent: failed to parse completion JSON", zap.Error(err))
		return fallbackIntent(text)
	}

	if !validIntents[parsed.Intent] {
		parsed.Intent = model.IntentGeneralInquiry
	}

	confidence := 0.5
	if parsed.Confidence != nil {
		confidence = *parsed.Confidence
	}

	return model.IntentResult{Intent: parsed.Intent, Confidence: confidence}
}

// fallbackIntent is the deterministic rule-based classifier, first match wins.
func fallbackIntent(text string) model.IntentResult {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, salesKeywords...):
		return model.IntentResult{Intent: model.IntentSalesInquiry, Confidence: 0.7}
	case containsAny(lower, perfKeywords...):
		return model.IntentResult{Intent: model.IntentPerformanceQuery, Confidence: 0.7}
	case containsAny(lower, techKeywords...):
		return model.IntentResult{Intent: model.IntentTechnicalQuestion, Confidence: 0.7}
	default:
		return model.IntentResult{Intent: model.IntentGeneralInquiry, Confidence: 0.5}
	}
}
