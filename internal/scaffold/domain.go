package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dogfold-labs/dogfold/internal/template"
)

// RegisterDomain ensures the domain skeleton exists under the target:
// domains/<name>/{classes,verbs} with package markers, plus a commands stub
// generated from the domain commands template when one is available. The
// flow is idempotent — re-running only fills in missing pieces and never
// overwrites existing files.
func (g *Generator) RegisterDomain(targetSel, name string) (*Result, error) {
	t, err := g.resolver.Resolve(targetSel)
	if err != nil {
		return nil, err
	}

	createdSomething := false
	track := func(existedBefore bool) {
		if !existedBefore {
			createdSomething = true
		}
	}

	domainsRoot := filepath.Join(t.Root, "domains")
	track(dirExists(domainsRoot))
	if err := ensureDir(domainsRoot); err != nil {
		return nil, err
	}
	if err := ensurePackageMarker(domainsRoot, fmt.Sprintf("groups the generated %s domains.", t.Package)); err != nil {
		return nil, err
	}

	domainDir := filepath.Join(domainsRoot, name)
	for _, dir := range []string{domainDir, filepath.Join(domainDir, "classes"), filepath.Join(domainDir, "verbs")} {
		track(dirExists(dir))
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}
	if err := ensurePackageMarker(domainDir, fmt.Sprintf("is the generated %s domain.", name)); err != nil {
		return nil, err
	}
	if err := ensurePackageMarker(filepath.Join(domainDir, "classes"), fmt.Sprintf("holds generated %s classes.", name)); err != nil {
		return nil, err
	}
	if err := ensurePackageMarker(filepath.Join(domainDir, "verbs"), fmt.Sprintf("holds generated %s verbs.", name)); err != nil {
		return nil, err
	}

	commandsFile := filepath.Join(domainDir, "commands.go")
	if !fileExists(commandsFile) {
		content, err := g.domainCommandsContent(t.Templates, name)
		if err != nil {
			return nil, err
		}
		if err := writeNewFile(commandsFile, content); err != nil {
			return nil, err
		}
		createdSomething = true
	}

	if !createdSomething {
		msg := fmt.Sprintf("Domain '%s' already exists in %s, nothing to do: %s", name, t.Package, domainDir)
		return skipped(msg, domainDir), nil
	}
	msg := fmt.Sprintf("Registered domain '%s' in %s -> %s", name, t.Package, domainDir)
	return created(msg, domainDir), nil
}

// domainCommandsContent renders the commands stub from the domain commands
// template, falling back to a synthesized minimal stub when no template
// exists. This is the one flow that produces content without a template
// rather than failing.
func (g *Generator) domainCommandsContent(templatesRoot, name string) (string, error) {
	text, err := template.Load(filepath.Join(templatesRoot, "domain_commands.go.tmpl"))
	if err == nil {
		return withNewline(template.Substitute(text, template.Bindings{DomainName: name})), nil
	}
	if !errors.Is(err, template.ErrNotFound) {
		return "", err
	}

	pkg := packageName(name)
	stub := fmt.Sprintf(`package %s

import "github.com/spf13/cobra"

// Cmd groups the %s domain commands. Verbs registered into this domain
// attach their commands here.
var Cmd = &cobra.Command{
	Use:   %q,
	Short: %q,
}
`, pkg, name, name, name+" management commands")
	return stub, nil
}
