package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	registerVerbCode    string
	registerClassCode   string
	registerClassDomain string
)

func init() {
	registerVerbCmd.Flags().StringVar(&registerVerbCode, "code", "", "Inline verb body (not honored yet, surfaced as a warning)")
	registerClassCmd.Flags().StringVar(&registerClassCode, "code", "", "Inline class file content, written verbatim")
	registerClassCmd.Flags().StringVar(&registerClassDomain, "domain", "", "Domain the class nests under")

	registerCmd.AddCommand(registerDomainCmd)
	registerCmd.AddCommand(registerVerbCmd)
	registerCmd.AddCommand(registerClassCmd)
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Generate domains, verbs, and ad hoc classes in a target package",
}

var registerDomainCmd = &cobra.Command{
	Use:                "domain <name>",
	Short:              "Scaffold a domain directory with classes/ and verbs/ subpackages",
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

		result, err := g.RegisterDomain(selector, rest[0])
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
		return nil
	},
}

var registerVerbCmd = &cobra.Command{
	Use:                "verb <name | domain.verb>",
	Short:              "Generate a verb file from the best-matching template",
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
			return fmt.Errorf("expected exactly one verb name, got %d arguments", len(rest))
		}

		result, err := g.RegisterVerb(selector, rest[0], registerVerbCode)
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
		return nil
	},
}

var registerClassCmd = &cobra.Command{
	Use:                "class <Name | domain.Name>",
	Short:              "Generate a single-file class, from inline code or a template",
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

		domain, name, err := splitClassName(rest[0])
		if err != nil {
			return err
		}
		if registerClassDomain != "" {
			if domain != "" && domain != registerClassDomain {
				return fmt.Errorf("domain given both as %q prefix and --domain %q", domain, registerClassDomain)
			}
			domain = registerClassDomain
		}
		result, err := g.DefineClassFile(selector, name, domain, registerClassCode)
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
		return nil
	},
}

// splitClassName splits an optional "domain.Name" prefix off a class name.
func splitClassName(fullName string) (domain, name string, err error) {
	if !strings.Contains(fullName, ".") {
		if fullName == "" {
			return "", "", fmt.Errorf("empty class name")
		}
		return "", fullName, nil
	}
	parts := strings.Split(fullName, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q is not of the form domain.Name", fullName)
	}
	return parts[0], parts[1], nil
}
