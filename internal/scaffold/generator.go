package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dogfold-labs/dogfold/internal/target"
)

// ErrInvalidName is returned for malformed dotted domain.verb names.
var ErrInvalidName = errors.New("invalid name")

// Generator runs the generation flows against a resolver. It carries no
// state across calls; every invocation resolves its target and paths from
// its arguments alone.
type Generator struct {
	resolver *target.Resolver
}

// New returns a generator over the given resolver.
func New(resolver *target.Resolver) *Generator {
	return &Generator{resolver: resolver}
}

// Resolver exposes the underlying resolver for selector parsing.
func (g *Generator) Resolver() *target.Resolver {
	return g.resolver
}

// ensureDir creates dir (and parents) when absent.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// ensurePackageMarker writes a doc.go bearing the package clause into dir
// when one is not already there. Marker files are never overwritten.
func ensurePackageMarker(dir, summary string) error {
	path := filepath.Join(dir, "doc.go")
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking marker %s: %w", path, err)
	}

	pkg := packageName(filepath.Base(dir))
	content := fmt.Sprintf("// Package %s %s\npackage %s\n", pkg, summary, pkg)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing marker %s: %w", path, err)
	}
	return nil
}

// writeNewFile writes content to path. The caller is responsible for the
// exists-check; this helper only performs the write.
func writeNewFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// withNewline guarantees content ends with a single trailing newline.
func withNewline(content string) string {
	if content == "" || content[len(content)-1] != '\n' {
		return content + "\n"
	}
	return content
}
