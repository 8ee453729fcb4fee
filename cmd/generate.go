package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/mcqgen"
	"github.com/abhisek/docquiz/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file.pdf>",
	Short: "Generate MCQs for a PDF and print them",
	Long: `Extract the text of a PDF and generate a validated MCQ set for it.

The instruction works like the HTTP API message: a number directly before
"mcq" or "questions" sets the count (clamped to 5..20, default 5).`,
	Example: `  docquiz generate notes.pdf -m "10 questions on enzymes"
  docquiz generate notes.pdf -m "8 mcq" --attempts 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("message", "m", "", "Topic and question count, e.g. \"10 questions on enzymes\"")
	generateCmd.Flags().Int("attempts", 0, "Maximum generation attempts (overrides DOCQUIZ_MAX_ATTEMPTS)")
	generateCmd.Flags().Bool("json", false, "Print the MCQ set as JSON")
	generateCmd.Flags().Bool("answers", false, "Highlight the correct answers")
	generateCmd.Flags().Int("width", 0, "Wrap question cards to this width")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")
	asJSON, _ := cmd.Flags().GetBool("json")
	showAnswers, _ := cmd.Flags().GetBool("answers")
	width, _ := cmd.Flags().GetInt("width")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("attempts"); v > 0 {
		cfg.Generation.MaxAttempts = v
	}

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := cmd.Context()
	text, err := p.source.Extract(ctx, args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("could not extract text from PDF")
	}

	params := mcqgen.Interpret(message)
	if !asJSON {
		fmt.Fprintf(os.Stderr, "Generating %d questions (up to %d attempts)...\n",
			params.Count, cfg.Generation.MaxAttempts)
	}

	set, err := p.generator.Generate(ctx, text, message, cfg.Generation.MaxAttempts)
	if err != nil {
		if !asJSON {
			fmt.Fprintln(os.Stderr, render.Error(err))
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]mcqgen.Set{"mcqs": set})
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Set(set, render.Options{ShowAnswers: showAnswers, Width: width}))
	return nil
}
