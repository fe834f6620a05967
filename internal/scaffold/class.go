package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/dogfold-labs/dogfold/internal/registry"
	"github.com/dogfold-labs/dogfold/internal/template"
)

// DefaultClassVersion is the baseline version for newly defined classes.
const DefaultClassVersion = "1.0.0"

// ClassOptions configures the registry-backed class flow.
type ClassOptions struct {
	Name    string // CamelCase class name
	Domain  string // optional domain the class nests under
	Version string // semantic version, defaults to DefaultClassVersion
	Reverse bool   // delete the class directory instead of creating it
}

// DefineClass runs the registry-backed class flow: it creates the class
// directory (snake_case of the name), a package marker, the class module
// file, and a seeded registry document. The module and document are written
// by the same invocation or not at all — the pre-existence check and all
// pre-flight work happen before the first write. With Reverse set it
// deletes the class directory tree instead; a missing directory is a
// non-fatal no-op.
func (g *Generator) DefineClass(targetSel string, opts ClassOptions) (*Result, error) {
	t, err := g.resolver.Resolve(targetSel)
	if err != nil {
		return nil, err
	}

	version := opts.Version
	if version == "" {
		version = DefaultClassVersion
	}
	if _, err := semver.NewVersion(version); err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}

	snake := ToSnake(opts.Name)
	var classDir string
	if opts.Domain != "" {
		classDir = filepath.Join(t.Root, "domains", opts.Domain, "classes", snake)
	} else {
		classDir = filepath.Join(t.Root, snake)
	}

	if opts.Reverse {
		if !dirExists(classDir) {
			msg := fmt.Sprintf("Class directory does not exist: %s", classDir)
			return skipped(msg, classDir), nil
		}
		if err := os.RemoveAll(classDir); err != nil {
			return nil, fmt.Errorf("removing class directory %s: %w", classDir, err)
		}
		msg := fmt.Sprintf("Removed %s from %s -> %s", opts.Name, t.Package, classDir)
		return removed(msg, classDir), nil
	}

	moduleFile := filepath.Join(classDir, snake+".go")
	if fileExists(moduleFile) {
		msg := fmt.Sprintf("Class '%s' already exists, not overwriting: %s", opts.Name, moduleFile)
		return skipped(msg, moduleFile), nil
	}

	// Render the module before touching the filesystem so a template
	// problem aborts the whole invocation.
	content := template.Substitute(classModuleTemplate, template.Bindings{
		ClassName: opts.Name,
		SnakeName: snake,
		Version:   version,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	warnings := lintWarnings(content)

	if err := ensureDir(classDir); err != nil {
		return nil, err
	}
	if err := ensurePackageMarker(classDir, fmt.Sprintf("holds the generated %s class and its registry.", opts.Name)); err != nil {
		return nil, err
	}
	if err := writeNewFile(moduleFile, withNewline(content)); err != nil {
		return nil, err
	}

	registryFile := filepath.Join(classDir, snake+"_registry.yaml")
	reg := registry.New(registryFile, opts.Name, t.Package, version)
	if err := reg.Save(); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Defined %s in %s -> %s (version %s)", opts.Name, t.Package, classDir, version)
	return created(msg, classDir, warnings...), nil
}

// DefineClassFile is the adjacent ad hoc flow for single-file classes
// outside the registry-backed flow. Inline content is written verbatim;
// otherwise a class-specific template is preferred over the generic class
// template. Existing files are never overwritten.
func (g *Generator) DefineClassFile(targetSel, name, domain, inline string) (*Result, error) {
	t, err := g.resolver.Resolve(targetSel)
	if err != nil {
		return nil, err
	}

	snake := ToSnake(name)
	var destFile string
	if domain != "" {
		destDir := filepath.Join(t.Root, "domains", domain, "classes")
		if err := ensureDir(destDir); err != nil {
			return nil, err
		}
		if err := ensurePackageMarker(destDir, "holds generated classes."); err != nil {
			return nil, err
		}
		destFile = filepath.Join(destDir, snake+".go")
	} else {
		if err := ensureDir(t.Root); err != nil {
			return nil, err
		}
		destFile = filepath.Join(t.Root, snake+".go")
	}

	if fileExists(destFile) {
		msg := fmt.Sprintf("Class '%s' already exists, not overwriting: %s", name, destFile)
		return skipped(msg, destFile), nil
	}

	var content string
	var warnings []string
	if inline != "" {
		content = inline
	} else {
		var paths []string
		if domain != "" {
			paths = append(paths, filepath.Join(t.Templates, "domains", domain, "classes", snake+".go.tmpl"))
		}
		paths = append(paths,
			filepath.Join(t.Templates, "classes", snake+".go.tmpl"),
			filepath.Join(t.Templates, "class.go.tmpl"),
		)
		text, err := template.Load(paths...)
		if err != nil {
			return nil, err
		}
		content = template.Substitute(text, template.Bindings{
			ClassName:  name,
			SnakeName:  snake,
			DomainName: domain,
		})
		warnings = lintWarnings(content)
	}

	if err := writeNewFile(destFile, withNewline(content)); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Defined class '%s' in %s -> %s", name, t.Package, destFile)
	return created(msg, destFile, warnings...), nil
}
