package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"keymap/internal/keymap"
	"keymap/internal/ui"
)

var keysLsMarkdown bool

func init() {
	keysCmd.AddCommand(keysLsCmd)
	keysLsCmd.Flags().BoolVar(&keysLsMarkdown, "markdown", false, "print a markdown table, rendered when stdout is a terminal")
}

var keysLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List key mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		return printTable(table)
	},
}

func printTable(table keymap.Table) error {
	if len(table) == 0 {
		fmt.Println("(empty)")
		return nil
	}
	fd := int(os.Stdout.Fd())
	if !keysLsMarkdown {
		width := 0
		if term.IsTerminal(fd) {
			width, _, _ = term.GetSize(fd)
		}
		for _, k := range table {
			fmt.Println(ui.MenuLine(k, width))
		}
		return nil
	}
	md := ui.KeymapMarkdown(table)
	if !term.IsTerminal(fd) {
		// keep output simple for scripting
		fmt.Print(md)
		return nil
	}
	width, _, _ := term.GetSize(fd)
	out, err := ui.RenderMarkdown(md, width)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
