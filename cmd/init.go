package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rshell-sh/rshell/core/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long:  `Creates the configuration directory with a commented default config.yaml. Fails rather than overwriting an existing configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(afero.NewOsFs(), configDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
