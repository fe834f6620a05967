package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dogfold-labs/dogfold/internal/template"
)

// BuildDomain imports a whole domain template tree into the target:
// everything under <templates>/domains/<name>/ is copied into
// domains/<name>/, except files under a top-level schemas/ directory, which
// land in <root>/schemas/<name>/ instead. Package markers are filled in for
// the classes and verbs subdirectories afterwards.
func (g *Generator) BuildDomain(targetSel, name string) (*Result, error) {
	t, err := g.resolver.Resolve(targetSel)
	if err != nil {
		return nil, err
	}

	templatesDir := filepath.Join(t.Templates, "domains", name)
	if !dirExists(templatesDir) {
		return nil, fmt.Errorf("%w: no domain templates at %s", template.ErrNotFound, templatesDir)
	}

	domainDir := filepath.Join(t.Root, "domains", name)
	if err := ensureDir(domainDir); err != nil {
		return nil, err
	}

	copied := 0
	err = filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(templatesDir, path)
		if err != nil {
			return err
		}

		var dest string
		if first, rest, ok := strings.Cut(filepath.ToSlash(rel), "/"); ok && first == "schemas" {
			// Schema files go to the separate schemas tree.
			dest = filepath.Join(t.Root, "schemas", name, filepath.Base(rest))
		} else {
			dest = filepath.Join(domainDir, rel)
		}
		if err := ensureDir(filepath.Dir(dest)); err != nil {
			return err
		}
		if err := copyFile(path, dest); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing domain templates for %q: %w", name, err)
	}

	// Fill in package markers where the template tree created the
	// conventional subdirectories.
	for _, sub := range []string{"classes", "verbs"} {
		dir := filepath.Join(domainDir, sub)
		if !dirExists(dir) {
			continue
		}
		if err := ensurePackageMarker(dir, fmt.Sprintf("holds generated %s %s.", name, sub)); err != nil {
			return nil, err
		}
	}

	msg := fmt.Sprintf("Built domain '%s' in %s: %d files copied", name, t.Package, copied)
	return created(msg, domainDir), nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", dest, err)
	}
	return out.Close()
}
