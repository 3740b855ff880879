package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lsat-prep/diagnostics/internal/config"
	"github.com/lsat-prep/diagnostics/internal/diagnostics"
	"github.com/lsat-prep/diagnostics/internal/logger"
	"github.com/lsat-prep/diagnostics/internal/narrator"
)

type options struct {
	input           string
	styleBlock      int
	expectedSeconds float64
	lenient         bool
	jsonOutput      bool
	narrate         string
	concurrency     int
	logLevel        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := diagnostics.DefaultConfig()

	root := &cobra.Command{
		Use:           "diagnose",
		Short:         "Compute learner diagnostic profiles from test responses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(opts.logLevel)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.input, "input", "i", "-", "JSON input file, - for stdin")
	flags.IntVar(&opts.styleBlock, "style-block", defaults.StyleBlockSize, "number of leading questions used for learning style")
	flags.Float64Var(&opts.expectedSeconds, "expected-seconds", defaults.ExpectedSecondsPerQuestion, "expected seconds per question when the input has no expected total")
	flags.BoolVar(&opts.lenient, "lenient", false, "treat unknown confidence labels as neutral")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print the raw JSON profile")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newProfileCmd(opts), newBatchCmd(opts))
	return root
}

func (o *options) engine() *diagnostics.Engine {
	cfg := diagnostics.DefaultConfig()
	cfg.StyleBlockSize = o.styleBlock
	cfg.ExpectedSecondsPerQuestion = o.expectedSeconds
	cfg.LenientConfidence = o.lenient
	return diagnostics.NewEngine(cfg, diagnostics.DefaultPopulation())
}

// readInput loads the input file, or stdin when it is piped in.
func (o *options) readInput(cmd *cobra.Command) ([]byte, error) {
	if o.input != "-" {
		return os.ReadFile(o.input)
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return nil, errors.New("no input: pass --input or pipe JSON on stdin")
	}
	return io.ReadAll(in)
}

func (o *options) newNarrator() (*narrator.Narrator, error) {
	if o.narrate == "" || o.narrate == "off" {
		return nil, nil
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = config.DefaultModel
	}
	n, err := narrator.FromConfig(config.LLMConfig{
		APIKey:        os.Getenv("ANTHROPIC_API_KEY"),
		Model:         model,
		NarrationMode: o.narrate,
	})
	if err != nil {
		return nil, fmt.Errorf("narrator: %w", err)
	}
	return n, nil
}
