package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigShowCmd creates the config show command that prints the effective
// configuration after the project overlay and environment are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			if path := cfg.Path(); path != "" {
				cmd.Printf("# source: %s\n", path)
			} else {
				cmd.Printf("# source: defaults\n")
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
