package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sales-agent/internal/model"
)

var (
	processBody    string
	processFrom    string
	processSubject string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the email pipeline once and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := buildPipeline()

		result, err := p.ProcessEmail(cmd.Context(), model.EmailRequest{
			EmailBody: processBody,
			FromEmail: processFrom,
			Subject:   processSubject,
		})
		if err != nil {
			return eris.Wrap(err, "process email")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	processCmd.Flags().StringVar(&processBody, "body", "", "email body text")
	processCmd.Flags().StringVar(&processFrom, "from", "", "sender email address")
	processCmd.Flags().StringVar(&processSubject, "subject", "", "email subject")
	processCmd.MarkFlagRequired("body")
	processCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(processCmd)
}
