package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sales-agent/internal/config"
	"github.com/sells-group/sales-agent/internal/model"
	"github.com/sells-group/sales-agent/pkg/anthropic"
	"github.com/sells-group/sales-agent/pkg/whisper"
)

// Pipeline sequences the derivation steps for one inbound call or email and
// assembles the aggregated result. All state is per-request; a single
// Pipeline is safe for concurrent requests.
//
// Provider capability is explicit: a nil transcriber means call processing
// fails hard (no heuristic can substitute for speech recognition); a nil
// LLM client routes every generative step to its deterministic fallback.
type Pipeline struct {
	transcriber whisper.Client
	ai          anthropic.Client
	model       string
	uploadDir   string
}

// New creates a Pipeline. Either client may be nil when its credential is
// not configured.
func New(transcriber whisper.Client, ai anthropic.Client, cfg config.AnthropicConfig, uploadDir string) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		ai:          ai,
		model:       cfg.Model,
		uploadDir:   uploadDir,
	}
}

// ProcessCall transcribes a call recording and derives the full intelligence
// bundle from the transcript. Transcription is a hard dependency: its failure
// fails the request. Every step after it has its own fallback and cannot fail.
//
// The audio is staged in a per-request temp file under the upload dir and
// removed best-effort when processing finishes, successful or not.
func (p *Pipeline) ProcessCall(ctx context.Context, audio []byte, filename string) (*model.CallResult, error) {
	if p.transcriber == nil {
		return nil, eris.New("pipeline: transcription not configured")
	}

	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "pipeline: create upload dir")
	}

	audioPath := filepath.Join(p.uploadDir, fmt.Sprintf("temp_%s_%s", uuid.NewString(), filepath.Base(filename)))
	if err := os.WriteFile(audioPath, audio, 0o644); err != nil {
		return nil, eris.Wrap(err, "pipeline: save audio")
	}
	defer os.Remove(audioPath)

	zap.L().Info("pipeline: saved audio file",
		zap.String("path", audioPath),
		zap.Int("bytes", len(audio)),
	)

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: open audio")
	}
	transcript, err := p.transcriber.Transcribe(ctx, f, filename)
	f.Close()
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: transcribe audio")
	}

	zap.L().Info("pipeline: transcription complete", zap.Int("chars", len(transcript)))

	analysis := ScoreLead(transcript, "")

	// Intent, requirements and lead identity all depend only on the
	// transcript; run them concurrently. None of them can fail.
	var (
		intent model.IntentResult
		reqs   []string
		lead   model.LeadInfo
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		intent = p.DetectIntent(gCtx, transcript)
		return nil
	})
	g.Go(func() error {
		reqs = p.ExtractRequirements(gCtx, transcript)
		return nil
	})
	g.Go(func() error {
		lead = p.ExtractLeadInfo(gCtx, transcript)
		return nil
	})
	_ = g.Wait()

	suggestedEmail := p.GenerateEmailResponse(ctx, transcript, lead, reqs)
	nextStep := p.SuggestNextStep(ctx, transcript, analysis)

	name := lead.Name
	return &model.CallResult{
		Transcription:  transcript,
		Intent:         intent.Intent,
		Confidence:     intent.Confidence,
		LeadScore:      analysis.Score,
		LeadTier:       analysis.Tier,
		Requirements:   reqs,
		SuggestedEmail: suggestedEmail,
		NextStep:       nextStep,
		LeadName:       &name,
		LeadEmail:      lead.Email,
		LeadPhone:      lead.Phone,
		Company:        lead.Company,
	}, nil
}

// ProcessEmail derives the intelligence bundle directly from an email body.
// No transcription step and, unlike the call path, no next-step suggestion.
func (p *Pipeline) ProcessEmail(ctx context.Context, req model.EmailRequest) (*model.EmailResult, error) {
	analysis := ScoreLead("", req.EmailBody)

	var (
		intent model.IntentResult
		reqs   []string
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		intent = p.DetectIntent(gCtx, req.EmailBody)
		return nil
	})
	g.Go(func() error {
		reqs = p.ExtractRequirements(gCtx, req.EmailBody)
		return nil
	})
	_ = g.Wait()

	// The sender address stands in for extracted identity on this path.
	from := req.FromEmail
	lead := model.LeadInfo{
		Name:  senderName(from),
		Email: &from,
	}

	response := p.GenerateEmailResponse(ctx, req.EmailBody, lead, reqs)

	return &model.EmailResult{
		Sender:            from,
		Intent:            intent.Intent,
		Confidence:        intent.Confidence,
		LeadScore:         analysis.Score,
		LeadTier:          analysis.Tier,
		SuggestedResponse: response,
		ExtractedData: model.ExtractedData{
			Requirements: reqs,
			Factors:      analysis.Factors,
		},
	}, nil
}

// senderName derives a display name from the local part of an address.
func senderName(address string) string {
	if idx := strings.Index(address, "@"); idx >= 0 {
		return address[:idx]
	}
	return address
}
