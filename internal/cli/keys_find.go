package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	keysCmd.AddCommand(keysFindCmd)
	keysFindCmd.Flags().BoolVar(&keysLsMarkdown, "markdown", false, "print a markdown table, rendered when stdout is a terminal")
}

var keysFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy-search key mappings",
	Long:  "List the mappings whose key, description or command fuzzily match the query, best match first.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		return printTable(table.Find(strings.Join(args, " ")))
	},
}
