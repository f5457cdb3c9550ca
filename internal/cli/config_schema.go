package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() { configCmd.AddCommand(configSchemaCmd) }

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.Schema())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
