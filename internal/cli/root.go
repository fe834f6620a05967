package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dogfold-labs/dogfold/internal/branding"
	"github.com/dogfold-labs/dogfold/internal/config"
	"github.com/dogfold-labs/dogfold/internal/scaffold"
	"github.com/dogfold-labs/dogfold/internal/target"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds domains, verbs, and classes into a target package,
driven by on-disk templates and per-class YAML registries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
// Failures are printed here with the error marker; commands stay silent on
// error so the marker appears exactly once.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", err)
	}
	return err
}

// newGenerator wires config, target discovery, and the scaffold generator
// for one command invocation.
func newGenerator() (*scaffold.Generator, error) {
	config.Load()

	repoRoot, err := config.RepoRoot()
	if err != nil {
		return nil, err
	}

	opts := target.DefaultOptions(repoRoot)
	if dt := config.DefaultTarget(); dt != "" {
		opts.DefaultTarget = dt
	}

	resolver, err := target.NewResolver(opts)
	if err != nil {
		return nil, err
	}
	return scaffold.New(resolver), nil
}

// splitSelector pulls the --target/--self switches out of a raw argument
// list, then runs the remainder through the command's own flag set. Used by
// generation commands, which disable cobra's flag parsing so the selector
// can appear anywhere in the argument list.
func splitSelector(cmd *cobra.Command, g *scaffold.Generator, args []string) (selector string, rest []string, err error) {
	selector, rest = g.Resolver().ParseSelector(args)
	if err := cmd.Flags().Parse(rest); err != nil {
		return "", nil, err
	}
	return selector, cmd.Flags().Args(), nil
}

// wantsHelp reports whether the manually parsed flag set saw --help.
func wantsHelp(cmd *cobra.Command) bool {
	help, err := cmd.Flags().GetBool("help")
	return err == nil && help
}

// printResult writes a generation outcome: warnings first, then the status
// line with its marker.
func printResult(w io.Writer, result *scaffold.Result) {
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	fmt.Fprintln(w, result.String())
}
