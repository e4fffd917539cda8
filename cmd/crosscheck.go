package cmd

import (
	"errors"
	"fmt"

	"cxxtags/pkg/config"
	"cxxtags/pkg/crosscheck"
	"cxxtags/pkg/ctags"

	"github.com/spf13/cobra"
)

var crosscheckCmd = &cobra.Command{
	Use:   "crosscheck [flags] <file_or_directory>...",
	Short: "Compare recognized definitions with a tree-sitter parse",
	Long: `Parse each C or C++ input with both the heuristic recognizer and a
tree-sitter grammar and report the function, class, struct and union
definitions only one of them found. Makefiles are skipped.

Requires a binary built with: go build -tags treesitter (cgo enabled).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrosscheck,
}

var errCrosscheckMismatch = errors.New("recognizer and tree-sitter disagree")

func runCrosscheck(cmd *cobra.Command, args []string) error {
	if !crosscheck.Available {
		return crosscheck.ErrUnavailable
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	extractor, err := ctags.New(cfg)
	if err != nil {
		return err
	}
	results, err := extractor.Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mismatches := 0
	for _, r := range results {
		if r.Language.Language == config.LanguageMake {
			continue
		}
		oracle, err := crosscheck.Oracle(cmd.Context(), r.Source.Bytes(), r.Language.Language == config.LanguageCPlusPlus)
		if err != nil {
			return fmt.Errorf("failed to cross-check %s: %w", r.Path, err)
		}
		rep := crosscheck.Compare(r.Tags, oracle)
		if rep.Agrees() {
			fmt.Fprintf(out, "✅ %s: %d definitions agree\n", r.Path, rep.Matched)
			continue
		}
		mismatches++
		fmt.Fprintf(out, "❌ %s: %d agree, %d missing, %d extra\n", r.Path, rep.Matched, len(rep.Missing), len(rep.Extra))
		for _, s := range rep.Missing {
			fmt.Fprintf(out, "   - missing %s\n", s)
		}
		for _, s := range rep.Extra {
			fmt.Fprintf(out, "   + extra   %s\n", s)
		}
	}

	if mismatches > 0 {
		return errCrosscheckMismatch
	}
	return nil
}
