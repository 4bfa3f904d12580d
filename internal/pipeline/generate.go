package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-agent/internal/model"
	"github.com/sells-group/sales-agent/pkg/anthropic"
)

// fallbackEmailResponse is returned whenever reply generation cannot use the
// LLM. Kept as a single generic acknowledgment so callers can rely on it.
const fallbackEmailResponse = "Thank you for your inquiry. We will get back to you soon."

// fallbackNextStep is the action token returned when next-step suggestion
// cannot use the LLM.
const fallbackNextStep = "follow_up_call"

const requirementsPrompt = `Extract key requirements, pain points, and needs from this sales conversation.
Return a JSON array of strings, each representing a distinct requirement or pain point.

Conversation: %s

Return ONLY a JSON array like: ["requirement1", "requirement2", ...]`

const leadInfoPrompt = `Extract lead information from this conversation. Return JSON with:
- name: person's name (or "Unknown" if not found)
- email: email address (or null if not found)
- phone: phone number (or null if not found)
- company: company name (or null if not found)

Conversation: %s

Return ONLY valid JSON: {"name": "...", "email": "...", "phone": "...", "company": "..."}`

const emailResponsePrompt = `You are a professional sales representative. Generate a response email that is:
- Friendly but professional
- Addresses their specific concerns
- Includes a clear call-to-action
- 2-3 paragraphs maximum

From: %s (%s)
Original Email: %s

Requirements to address: %s

Generate ONLY the email body (no subject line, no greeting formalities like "Dear X," or "Hi X," - just start with the content):`

const nextStepPrompt = `Based on this sales conversation, suggest the next best action step.
Options: schedule_demo, send_proposal, follow_up_call, send_information, close_deal

Conversation: %s
Lead Score: %d
Lead Tier: %s

Return ONLY the action (e.g., "schedule_demo" or "send_proposal"):`

// Non-greedy scans for the first bracketed JSON span embedded in prose.
var (
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*?\]`)
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*?\}`)
)

// errNotConfigured marks the missing-credential case: no network call is
// attempted and the caller's deterministic fallback applies immediately.
var errNotConfigured = eris.New("llm not configured")

// complete issues a single user-message completion and returns the
// concatenated response text. Token usage is cost-logged per phase.
func (p *Pipeline) complete(ctx context.Context, prompt string, maxTokens int64, phase string) (string, error) {
	if p.ai == nil {
		return "", errNotConfigured
	}

	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "pipeline: create message")
	}
	resp.Usage.LogCost(p.model, phase)

	return strings.TrimSpace(extractText(resp)), nil
}

// ExtractRequirements pulls a free-form requirements list from conversation
// text via the LLM. On any failure it returns an empty list, never an error.
func (p *Pipeline) ExtractRequirements(ctx context.Context, text string) []string {
	raw, err := p.complete(ctx, fmt.Sprintf(requirementsPrompt, text), 300, "requirements")
	if err != nil {
		if p.ai != nil {
			zap.L().Warn("requirements: completion failed", zap.Error(err))
		}
		return []string{}
	}

	span := jsonArrayPattern.FindString(raw)
	if span == "" {
		return []string{}
	}

	var requirements []string
	if err := json.Unmarshal([]byte(span), &requirements); err != nil {
		zap.L().Warn("requirements: failed to parse completion JSON", zap.Error(err))
		return []string{}
	}
	return requirements
}

// ExtractLeadInfo pulls the lead's identity from conversation text via the
// LLM. On any failure it falls back to the heuristic extractors with the
// name set to "Unknown". Never fails.
func (p *Pipeline) ExtractLeadInfo(ctx context.Context, text string) model.LeadInfo {
	raw, err := p.complete(ctx, fmt.Sprintf(leadInfoPrompt, text), 200, "lead_info")
	if err != nil {
		if p.ai != nil {
			zap.L().Warn("lead info: completion failed, using heuristics", zap.Error(err))
		}
		return heuristicLeadInfo(text)
	}

	span := jsonObjectPattern.FindString(raw)
	if span == "" {
		return heuristicLeadInfo(text)
	}

	var parsed struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Company *string `json:"company"`
	}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		zap.L().Warn("lead info: failed to parse completion JSON", zap.Error(err))
		return heuristicLeadInfo(text)
	}

	info := model.LeadInfo{
		Name:    "Unknown",
		Email:   parsed.Email,
		Phone:   parsed.Phone,
		Company: parsed.Company,
	}
	if parsed.Name != nil && *parsed.Name != "" {
		info.Name = *parsed.Name
	}
	return info
}

// heuristicLeadInfo derives lead identity from pattern matching alone.
func heuristicLeadInfo(text string) model.LeadInfo {
	return model.LeadInfo{
		Name:    "Unknown",
		Email:   ExtractEmail(text),
		Phone:   ExtractPhone(text),
		Company: ExtractCompany(text),
	}
}

// GenerateEmailResponse composes a professional reply to the conversation.
// On any failure it returns a fixed generic acknowledgment. Never fails.
func (p *Pipeline) GenerateEmailResponse(ctx context.Context, originalText string, lead model.LeadInfo, requirements []string) string {
	name := lead.Name
	if name == "" || name == "Unknown" {
		name = "Customer"
	}
	company := "Unknown Company"
	if lead.Company != nil && *lead.Company != "" {
		company = *lead.Company
	}

	prompt := fmt.Sprintf(emailResponsePrompt, name, company, originalText, strings.Join(requirements, ", "))
	reply, err := p.complete(ctx, prompt, 500, "email_response")
	if err != nil {
		if p.ai != nil {
			zap.L().Warn("email response: completion failed", zap.Error(err))
		}
		return fallbackEmailResponse
	}
	return reply
}

// SuggestNextStep asks the LLM to pick one of the five fixed action tokens
// for this lead. The lowercased, trimmed model output is returned as-is; on
// any failure the fixed follow_up_call token is returned. Never fails.
func (p *Pipeline) SuggestNextStep(ctx context.Context, text string, analysis model.LeadAnalysis) string {
	prompt := fmt.Sprintf(nextStepPrompt, text, analysis.Score, analysis.Tier)
	raw, err := p.complete(ctx, prompt, 100, "next_step")
	if err != nil {
		if p.ai != nil {
			zap.L().Warn("next step: completion failed", zap.Error(err))
		}
		return fallbackNextStep
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// extractText concatenates all text content blocks from a message response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// stripCodeFences removes a leading/trailing markdown code fence (with or
// without a language tag) from model output.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
