package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sales-agent/internal/config"
	"github.com/sells-group/sales-agent/internal/pipeline"
	"github.com/sells-group/sales-agent/pkg/anthropic"
	"github.com/sells-group/sales-agent/pkg/whisper"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sales-agent",
	Short: "Sales intelligence service for inbound calls and emails",
	Long:  "Transcribes sales call recordings, classifies intent, scores leads, extracts requirements and lead identity, and drafts replies. Falls back to deterministic heuristics when AI providers are not configured.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env file, real environment takes precedence.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildPipeline constructs the processing pipeline from configuration.
// Either provider may be absent; the pipeline handles both degradations.
func buildPipeline() *pipeline.Pipeline {
	var transcriber whisper.Client
	if cfg.OpenAI.Key != "" {
		transcriber = whisper.NewClient(cfg.OpenAI.Key,
			whisper.WithBaseURL(cfg.OpenAI.BaseURL),
			whisper.WithModel(cfg.OpenAI.WhisperModel),
		)
	} else {
		zap.L().Warn("OPENAI key not set, call transcription disabled")
	}

	var ai anthropic.Client
	if cfg.Anthropic.Key != "" {
		ai = anthropic.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("ANTHROPIC key not set, using heuristic fallbacks")
	}

	return pipeline.New(transcriber, ai, cfg.Anthropic, cfg.Server.UploadDir)
}
