package cmd

import (
	"fmt"
	"text/tabwriter"

	"cxxtags/pkg/tag"

	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the record kinds and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		q := tag.NewQueue(cfg.QueueOptions())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		section := func(title string, kinds []tag.Kind) {
			fmt.Fprintf(w, "%s\n", title)
			for _, k := range kinds {
				state := "on"
				if !q.Enabled(k) {
					state = "off"
				}
				fmt.Fprintf(w, "  %c\t%s\t%s\t%s\n", k.Letter(), k, state, k.Doc())
			}
		}
		section("C/C++", tag.CKinds())
		section("Make", tag.MakeKinds())
		section("Extra", []tag.Kind{tag.KindFile})
		return w.Flush()
	},
}
