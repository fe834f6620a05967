package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	buildCmd.AddCommand(buildDomainCmd)
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bulk-import template trees into a target package",
}

var buildDomainCmd = &cobra.Command{
	Use:                "domain <name>",
	Short:              "Copy a whole domain template tree into the target",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator()
		if err != nil {
			return err
		}
		selector, rest, err := splitSelector(cmd, g, args)
		if err != nil {
			return err
		}
		if wantsHelp(cmd) {
			return cmd.Help()
		}
		if len(rest) != 1 {
			return fmt.Errorf("expected exactly one domain name, got %d arguments", len(rest))
		}

		result, err := g.BuildDomain(selector, rest[0])
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
		return nil
	},
}
