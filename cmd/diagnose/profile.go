package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lsat-prep/diagnostics/internal/assessments"
	"github.com/lsat-prep/diagnostics/internal/models"
)

func newProfileCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Diagnose a single submission",
		Example: `  diagnose profile --input submission.json
  cat submission.json | diagnose profile --json
  diagnose profile -i submission.json --narrate mock`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.readInput(cmd)
			if err != nil {
				return err
			}
			if err := assessments.ValidatePayload(assessments.SchemaDiagnose, body); err != nil {
				return err
			}
			var req models.DiagnoseRequest
			if err := json.Unmarshal(body, &req); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			profile, err := opts.engine().Analyze(req.Input())
			if err != nil {
				return err
			}

			resp := models.DiagnoseResponse{Profile: profile}
			n, err := opts.newNarrator()
			if err != nil {
				return err
			}
			if n != nil {
				text, err := n.Narrate(cmd.Context(), profile)
				if err != nil {
					slog.Warn("narration failed", "error", err)
				} else {
					resp.Narrative = text
				}
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(out, renderProfile(profile))
			if resp.Narrative != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, resp.Narrative)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.narrate, "narrate", "off", "attach a narrative: off, mock or api")
	return cmd
}

func newBatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: `Diagnose many submissions from {"items": [...]}`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.readInput(cmd)
			if err != nil {
				return err
			}
			if err := assessments.ValidatePayload(assessments.SchemaBatch, body); err != nil {
				return err
			}
			var req models.DiagnoseBatchRequest
			if err := json.Unmarshal(body, &req); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			inputs := make([]models.DiagnosticInput, len(req.Items))
			for i, item := range req.Items {
				inputs[i] = item.Input()
			}
			profiles, err := opts.engine().AnalyzeBatch(cmd.Context(), inputs, opts.concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(models.DiagnoseBatchResponse{Profiles: profiles})
			}
			fmt.Fprint(out, renderBatch(profiles))
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "maximum analyses in flight")
	return cmd
}
