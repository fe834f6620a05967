package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dogfold-labs/dogfold/internal/template"
)

// RegisterVerb generates a verb file from the best-matching template.
// fullName is either "verb" or "domain.verb"; a dotted name must split into
// exactly two non-empty parts. Inline content is accepted but not honored
// yet — it is surfaced as a warning on the result, never silently dropped.
func (g *Generator) RegisterVerb(targetSel, fullName, inline string) (*Result, error) {
	t, err := g.resolver.Resolve(targetSel)
	if err != nil {
		return nil, err
	}

	domainName, verbName, err := splitVerbName(fullName)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if inline != "" {
		warnings = append(warnings, "inline code is not supported yet; ignored")
	}

	var destDir string
	if domainName != "" {
		destDir = filepath.Join(t.Root, "domains", domainName, "verbs")
	} else {
		destDir = filepath.Join(t.Root, "verbs")
	}
	if err := ensureDir(destDir); err != nil {
		return nil, err
	}
	if err := ensurePackageMarker(destDir, "holds generated verbs."); err != nil {
		return nil, err
	}

	// Precedence: domain+verb specific, then top-level verb specific, then
	// the generic verb template.
	var paths []string
	if domainName != "" {
		paths = append(paths, filepath.Join(t.Templates, "domains", domainName, "verbs", verbName+".go.tmpl"))
	}
	paths = append(paths,
		filepath.Join(t.Templates, "verbs", verbName+".go.tmpl"),
		filepath.Join(t.Templates, "verbs", "verb.go.tmpl"),
	)
	text, err := template.Load(paths...)
	if err != nil {
		return nil, err
	}

	content := template.Substitute(text, template.Bindings{
		VerbName:   verbName,
		DomainName: domainName,
	})
	warnings = append(warnings, lintWarnings(content)...)

	destFile := filepath.Join(destDir, verbName+".go")
	if fileExists(destFile) {
		var msg string
		if domainName != "" {
			msg = fmt.Sprintf("Verb '%s.%s' already exists, not overwriting: %s", domainName, verbName, destFile)
		} else {
			msg = fmt.Sprintf("Verb '%s' already exists, not overwriting: %s", verbName, destFile)
		}
		return skipped(msg, destFile, warnings...), nil
	}

	if err := writeNewFile(destFile, withNewline(content)); err != nil {
		return nil, err
	}

	var msg string
	if domainName != "" {
		msg = fmt.Sprintf("Registered verb '%s.%s' in %s -> %s", domainName, verbName, t.Package, destFile)
	} else {
		msg = fmt.Sprintf("Registered verb '%s' in %s -> %s", verbName, t.Package, destFile)
	}
	return created(msg, destFile, warnings...), nil
}

// splitVerbName splits "domain.verb" into its parts. Undotted names are a
// bare verb; dotted names must have exactly two non-empty segments.
func splitVerbName(fullName string) (domain, verb string, err error) {
	if !strings.Contains(fullName, ".") {
		if fullName == "" {
			return "", "", fmt.Errorf("%w: empty verb name", ErrInvalidName)
		}
		return "", fullName, nil
	}
	parts := strings.Split(fullName, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q is not of the form domain.verb", ErrInvalidName, fullName)
	}
	return parts[0], parts[1], nil
}

// lintWarnings reports leftover placeholder tokens in substituted output.
func lintWarnings(content string) []string {
	var warnings []string
	for _, token := range template.Lint(content) {
		warnings = append(warnings, fmt.Sprintf("template token %s was not substituted", token))
	}
	return warnings
}
