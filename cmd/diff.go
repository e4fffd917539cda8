package cmd

import (
	"errors"
	"fmt"

	"cxxtags/pkg/ctags"
	"cxxtags/pkg/tagdiff"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <old_file> <new_file>",
	Short: "Show how the records of two files differ",
	Long: `Recognize two files and print a unified diff of their record listings.
Each listing line holds the kind, qualified name, signature, type, access
and role of a record. Line numbers are left out unless --lines is given,
so code that only moved does not show up.

Examples:
  # Compare the API of two versions of a header
  cxxtags diff old/widget.h new/widget.h

  # Fail in scripts when the declarations changed
  cxxtags diff --exit-code before.c after.c`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var (
	diffLines    bool
	diffSort     bool
	diffContext  int
	diffExitCode bool
)

var errListingsDiffer = errors.New("record listings differ")

func init() {
	diffCmd.Flags().BoolVar(&diffLines, "lines", false, "Include line numbers in the listings")
	diffCmd.Flags().BoolVarP(&diffSort, "sort", "s", false, "Sort listings by qualified name")
	diffCmd.Flags().IntVarP(&diffContext, "context", "U", 3, "Lines of context around each change")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "Fail when the listings differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	extractor, err := ctags.New(cfg)
	if err != nil {
		return err
	}

	oldRes, err := extractor.File(args[0])
	if err != nil {
		return err
	}
	newRes, err := extractor.File(args[1])
	if err != nil {
		return err
	}
	logResults(newLogger(cmd), []*ctags.Result{oldRes, newRes})

	opts := tagdiff.Options{Context: diffContext, Lines: diffLines, Sort: diffSort}
	patch, err := tagdiff.Unified(args[0], args[1], oldRes.Tags, newRes.Tags, opts)
	if err != nil {
		return err
	}
	if patch == "" {
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), patch)
	if diffExitCode {
		return errListingsDiffer
	}
	return nil
}
