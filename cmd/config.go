package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [file...]",
	Short: "Show the effective configuration and the language of files",
	Long: `Print the configuration after merging the configuration file and the
command-line flags. For every file given, print the language and header
mode the recognizer would use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		source := cfg.Path
		if source == "" {
			source = "(defaults)"
		}
		fmt.Fprintf(out, "# configuration: %s\n", source)
		fmt.Fprint(out, cfg.String())

		for _, path := range args {
			d := cfg.Detect(path)
			mode := ""
			if d.Header {
				mode = " header"
			}
			fmt.Fprintf(out, "%s: %s%s\n", path, d.Language, mode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
