package cli

import (
	"fmt"
	"os"

	"github.com/dogfold-labs/dogfold/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	defineClassDomain  string
	defineClassVersion string
	defineClassReverse bool
)

func init() {
	defineClassCmd.Flags().StringVar(&defineClassDomain, "domain", "", "Domain the class nests under")
	defineClassCmd.Flags().StringVar(&defineClassVersion, "version", scaffold.DefaultClassVersion, "Semantic version stamped into the class")
	defineClassCmd.Flags().BoolVar(&defineClassReverse, "reverse", false, "Remove the class directory instead of creating it")

	defineCmd.AddCommand(defineClassCmd)
	rootCmd.AddCommand(defineCmd)
}

var defineCmd = &cobra.Command{
	Use:   "define",
	Short: "Generate registry-backed classes in a target package",
}

var defineClassCmd = &cobra.Command{
	Use:                "class <Name>",
	Short:              "Scaffold a class package with its module file and seeded registry",
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
			return fmt.Errorf("expected exactly one class name, got %d arguments", len(rest))
		}

		result, err := g.DefineClass(selector, scaffold.ClassOptions{
			Name:    rest[0],
			Domain:  defineClassDomain,
			Version: defineClassVersion,
			Reverse: defineClassReverse,
		})
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
		return nil
	},
}
