package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"cxxtags/pkg/config"

	"github.com/spf13/cobra"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cxxtags",
	Short: "A ctags-style symbol extractor for C, C++ and Makefiles",
	Long: `cxxtags scans C and C++ sources and Makefiles and reports the
declarations it finds (macros, types, functions, variables, namespaces,
members, make targets, ...) together with their scope, access, signature
and type. It tolerates code it cannot fully understand and writes ctags,
etags or JSON lines output.`,
	Version:       getVersionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cxxtags %s\n", getVersionString())
		fmt.Fprintf(out, "  Version: %s\n", version)
		fmt.Fprintf(out, "  Commit:  %s\n", commit)
		fmt.Fprintf(out, "  Date:    %s\n", date)
	},
}

var (
	// Command-line flags shared by every command
	configPath    string
	verbose       bool
	ignoreTokens  []string
	defines       []string
	examineIf0    bool
	fileScope     bool
	referenceTags bool
	extraFileTags bool
	expandMacros  bool
	excludeDirs   []string
	kindFlags     = newKindsValue()
)

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (default: "+config.FileName+" in the working directory or a parent)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Report per-file statistics on stderr")
	flags.StringSliceVarP(&ignoreTokens, "ignore", "I", nil, "Identifiers to ignore (NAME, NAME+ or NAME=replacement)")
	flags.StringSliceVarP(&defines, "define", "D", nil, "Macro definitions (NAME, NAME=body or NAME(args)=body)")
	flags.BoolVar(&examineIf0, "if0", false, "Examine code inside #if 0 branches")
	flags.BoolVar(&fileScope, "file-scope", true, "Include records visible only inside their file")
	flags.BoolVar(&referenceTags, "reference-tags", false, "Include #undef, #include and make include records")
	flags.BoolVar(&extraFileTags, "extra-file-tags", false, "Add a record for every input file")
	flags.BoolVar(&expandMacros, "expand-file-macros", false, "Expand macros defined by the input itself")
	flags.StringSliceVar(&excludeDirs, "exclude", nil, "Directory names to skip when walking directories")
	flags.Var(kindFlags, "kinds", "Enable or disable kinds, e.g. +lz-p or local,-prototype")

	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(etagsCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(crosscheckCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger returns the diagnostics logger, silent unless --verbose
func newLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "cxxtags: ", 0)
}

// loadConfig resolves the configuration file and applies the flags given
// on the command line over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	cfg.Ignore = append(cfg.Ignore, ignoreTokens...)
	cfg.Define = append(cfg.Define, defines...)
	if flags.Changed("if0") {
		cfg.If0 = examineIf0
	}
	if flags.Changed("file-scope") {
		cfg.FileScope = &fileScope
	}
	if flags.Changed("reference-tags") {
		cfg.ReferenceTags = referenceTags
	}
	if flags.Changed("extra-file-tags") {
		cfg.ExtraFileTags = extraFileTags
	}
	if flags.Changed("expand-file-macros") {
		cfg.ExpandMacros = expandMacros
	}
	if flags.Changed("exclude") {
		cfg.Exclude = excludeDirs
	}
	if err := kindFlags.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
