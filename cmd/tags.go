package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"cxxtags/pkg/config"
	"cxxtags/pkg/ctags"
	"cxxtags/pkg/formatter"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [flags] <file_or_directory>...",
	Short: "Write a ctags-format tags file",
	Long: `Scan the given files and directories and write their records in the
extended ctags format.

Examples:
  # Tag a source tree into ./tags
  cxxtags tags src/

  # Print sorted tags of one file with local variables and parameters
  cxxtags tags --sort --kinds +lz -o - widget.cpp

  # Emit JSON lines instead, as configured in .cxxtags.yaml or forced here
  cxxtags tags --format json -o - main.c`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		name := tagsFormat
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			name = cfg.Format
		}
		format, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}

		output := tagsOutput
		if !cmd.Flags().Changed("output") {
			output = defaultOutput(format)
		}
		return writeTags(cmd, cfg, args, format, output)
	},
}

var etagsCmd = &cobra.Command{
	Use:   "etags [flags] <file_or_directory>...",
	Short: "Write an Emacs TAGS file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeTags(cmd, cfg, args, formatter.FormatEtags, output)
	},
}

var jsonCmd = &cobra.Command{
	Use:   "json [flags] <file_or_directory>...",
	Short: "Print records as JSON lines",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeTags(cmd, cfg, args, formatter.FormatJSON, output)
	},
}

var (
	tagsOutput string
	tagsFormat string
	tagsSort   bool
	tagsFields bool
	tagsHeader bool
)

func init() {
	tagsCmd.Flags().StringVarP(&tagsOutput, "output", "o", "tags", "Output file, - for stdout")
	tagsCmd.Flags().StringVarP(&tagsFormat, "format", "f", "ctags", "Output format (ctags, etags, json)")
	tagsCmd.Flags().BoolVarP(&tagsSort, "sort", "s", false, "Sort records by name")
	tagsCmd.Flags().BoolVar(&tagsFields, "fields", true, "Write extension fields")
	tagsCmd.Flags().BoolVar(&tagsHeader, "header", true, "Write the !_TAG_ pseudo tags")

	etagsCmd.Flags().StringP("output", "o", "TAGS", "Output file, - for stdout")
	jsonCmd.Flags().StringP("output", "o", "-", "Output file, - for stdout")
	jsonCmd.Flags().BoolVarP(&tagsSort, "sort", "s", false, "Sort records by name")
}

func defaultOutput(format formatter.Format) string {
	switch format {
	case formatter.FormatEtags:
		return "TAGS"
	case formatter.FormatJSON:
		return "-"
	}
	return "tags"
}

// writeTags recognizes every input and writes the records in format to
// output.
func writeTags(cmd *cobra.Command, cfg *config.Config, args []string, format formatter.Format, output string) error {
	logger := newLogger(cmd)
	if cfg.Path != "" {
		logger.Printf("using configuration %s", cfg.Path)
	}

	extractor, err := ctags.New(cfg)
	if err != nil {
		return err
	}
	results, err := extractor.Run(cmd.Context(), args)
	if err != nil {
		return err
	}
	logResults(logger, results)

	f := formatter.New(formatter.Options{
		Format:  format,
		Sort:    tagsSort || cfg.Sort,
		Header:  tagsHeader,
		Fields:  tagsFields,
		Version: version,
	})

	files := ctags.Files(results)
	if output == "-" {
		return f.Write(cmd.OutOrStdout(), files)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := writeAndClose(file, output, func(w io.Writer) error {
		return f.Write(w, files)
	}); err != nil {
		return err
	}
	logger.Printf("wrote %s", output)
	return nil
}

// writeAndClose runs write on wc and closes it. A failed close is reported
// unless write already failed.
func writeAndClose(wc io.WriteCloser, name string, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

func logResults(logger *log.Logger, results []*ctags.Result) {
	total := 0
	for _, r := range results {
		total += len(r.Tags)
		if r.Language.Language == config.LanguageMake {
			logger.Printf("%s: %s, %d records", r.Path, r.Language.Language, len(r.Tags))
			continue
		}
		status := ""
		switch {
		case r.Parse.Failed:
			status = " (failed, partial records kept)"
		case r.Parse.Rescanned:
			status = " (rescanned)"
		}
		logger.Printf("%s: %s, %d records, %d passes, %d scopes%s",
			r.Path, r.Language.Language, len(r.Tags), r.Parse.Passes, r.Parse.Stats.Pushes, status)
	}
	logger.Printf("%d files, %d records", len(results), total)
}
