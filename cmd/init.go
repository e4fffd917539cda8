package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cxxtags/pkg/config"
	"cxxtags/pkg/ctags"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var initCmd = &cobra.Command{
	Use:   "init [flags] <directory>",
	Short: "Initialize a " + config.FileName + " configuration file by analyzing the codebase",
	Long: `Initialize a ` + config.FileName + ` configuration file by scanning the codebase.

The command walks the directory, maps C-family extensions the built-in
table does not know (.ipp, .cu, .inc, ...) to a language, runs the
recognizer over every input and reports the files it could only partly
understand. Those usually need ignore tokens or macro definitions.

Examples:
  # Initialize for the current directory
  cxxtags init .

  # Replace an existing configuration
  cxxtags init --overwrite src/`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var overwrite bool

// extraExtensions maps extensions seen in C and C++ trees to the language
// they usually hold
var extraExtensions = map[string]string{
	".ipp":   "c++-header",
	".ixx":   "c++",
	".cppm":  "c++",
	".cu":    "c++",
	".cuh":   "c++-header",
	".inc":   "c++-header",
	".hh.in": "c++-header",
	".h.in":  "c-header",
}

func init() {
	initCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing "+config.FileName+" file if it exists")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := args[0]
	out := cmd.OutOrStdout()

	cfgPath := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !overwrite {
		return fmt.Errorf("%s already exists, use --overwrite to replace it", cfgPath)
	}

	cfg := config.Default()
	languages, err := scanExtensions(cfg, targetDir)
	if err != nil {
		return err
	}
	if len(languages) > 0 {
		cfg.Languages = languages
	}

	extractor, err := ctags.New(cfg)
	if err != nil {
		return err
	}
	results, err := extractor.Run(cmd.Context(), []string{targetDir})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no C, C++ or Makefile inputs found in %s", targetDir)
	}

	counts := make(map[config.Language]int)
	var troubled []string
	for _, r := range results {
		counts[r.Language.Language]++
		if r.Parse.Failed || r.Parse.Rescanned {
			troubled = append(troubled, r.Path)
		}
	}

	fmt.Fprintf(out, "📂 Found %d inputs: %d C, %d C++, %d Make\n",
		len(results), counts[config.LanguageC], counts[config.LanguageCPlusPlus], counts[config.LanguageMake])
	for _, ext := range cfg.Extensions() {
		fmt.Fprintf(out, "  🔤 %s mapped to %s\n", ext, cfg.Languages[ext])
	}
	if len(troubled) > 0 {
		fmt.Fprintf(out, "⚠️  %d files needed a relaxed rescan; consider ignore tokens or defines for:\n", len(troubled))
		for _, path := range troubled {
			fmt.Fprintf(out, "  - %s\n", path)
		}
	}

	if err := writeConfig(cfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "💾 Wrote %s\n", cfgPath)
	return nil
}

// scanExtensions finds the extra C-family extensions used below dir
func scanExtensions(cfg *config.Config, dir string) (map[string]string, error) {
	found := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && cfg.IsExcluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Detect(path).Language != config.LanguageNone {
			return nil
		}
		for ext, lang := range extraExtensions {
			if strings.HasSuffix(d.Name(), ext) && d.Name() != ext {
				found["*"+ext] = lang
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return found, nil
}

// writeConfig writes cfg as YAML with its keys in a stable order
func writeConfig(path string, cfg *config.Config) error {
	sort.Strings(cfg.Exclude)
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
