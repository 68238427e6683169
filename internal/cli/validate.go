package cli

import (
	"github.com/spf13/cobra"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
)

// validateCommand creates the validate command for checking definition files.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check chart definition files for structural problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				def, err := chartio.DecodeFile(path)
				if err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				printSuccess("%s", path)
				printDetail("chart %q, kind %s, %d series", def.Name, def.Kind, len(def.Series))
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidDefinition, "%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}
