package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List discovered scaffolding targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator()
		if err != nil {
			return err
		}

		resolver := g.Resolver()
		for _, key := range resolver.List() {
			marker := " "
			if key == resolver.DefaultTarget() {
				marker = "*"
			}
			t, err := resolver.Resolve(key)
			if err != nil {
				return err
			}
			fmt.Printf("%s %-16s %s\n", marker, key, t.Root)
		}
		return nil
	},
}
