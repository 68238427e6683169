package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blueprintmrk/graphy/pkg/chartio"
)

// convertCommand creates the convert command for translating definitions
// between TOML and JSON.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a chart definition between TOML and JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			def, err := chartio.DecodeFile(input)
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = siblingFormatPath(input)
			}
			format, err := chartio.FormatForPath(target)
			if err != nil {
				return err
			}

			out, err := os.Create(target)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := chartio.Encode(out, def, format); err != nil {
				return err
			}

			printSuccess("Converted %s", filepath.Base(input))
			printFile(target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the input with the opposite extension)")

	return cmd
}

// siblingFormatPath swaps a definition file's extension between .toml and
// .json.
func siblingFormatPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if filepath.Ext(input) == ".toml" {
		return base + ".json"
	}
	return base + ".toml"
}
