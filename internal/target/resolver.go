package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownTarget is returned when a selector does not resolve to any
// discovered target.
var ErrUnknownTarget = errors.New("unknown target")

// DefaultTargetKey is the canonical key of the built-in default target.
const DefaultTargetKey = "dogfold-core"

// Probe describes a candidate target location checked at construction time.
// The target is registered only when both SrcRoot and Templates exist; the
// artifact root is the first package subdirectory found under SrcRoot.
type Probe struct {
	Key       string
	SrcRoot   string
	Templates string
}

// Options configures target discovery. Production wiring uses
// DefaultOptions; tests supply their own roots and probes.
type Options struct {
	RepoRoot         string            // repository checkout root (required)
	DefaultRoot      string            // artifact root of the default target
	PackageTemplates string            // template root of the default target
	DefaultTarget    string            // canonical key of the default target
	Aliases          map[string]string // alternate spelling -> canonical key
	Probes           []Probe           // additional targets probed on disk
}

// DefaultOptions returns the production discovery configuration for a
// repository checkout: the dogfold-core target rooted at internal/dogfold
// with templates under templates/, a legacy dogfold-dev alias, and a probe
// for an adjacent life-cli checkout.
func DefaultOptions(repoRoot string) Options {
	return Options{
		RepoRoot:         repoRoot,
		DefaultRoot:      filepath.Join(repoRoot, "internal", "dogfold"),
		PackageTemplates: filepath.Join(repoRoot, "templates"),
		DefaultTarget:    DefaultTargetKey,
		Aliases: map[string]string{
			"dog":          DefaultTargetKey,
			"dogfold":      DefaultTargetKey,
			"dogfold_core": DefaultTargetKey,
			"dogfold-core": DefaultTargetKey,
			"dogfold-dev":  DefaultTargetKey, // legacy spelling
		},
		Probes: []Probe{
			{
				Key:       "life-cli",
				SrcRoot:   filepath.Join(repoRoot, "life-cli", "src"),
				Templates: filepath.Join(repoRoot, "scripts", "life-cli", "templates"),
			},
		},
	}
}

// Resolver maps symbolic target names to Target records. Discovery happens
// once in NewResolver; the resolver is read-only afterwards.
type Resolver struct {
	repoRoot      string
	defaultTarget string
	targets       map[string]Target
	aliases       map[string]string
}

// NewResolver discovers targets eagerly and returns a resolver over them.
func NewResolver(opts Options) (*Resolver, error) {
	if opts.RepoRoot == "" {
		return nil, fmt.Errorf("target discovery requires a repository root")
	}
	repoRoot, err := filepath.Abs(opts.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving repository root %q: %w", opts.RepoRoot, err)
	}

	defaultKey := opts.DefaultTarget
	if defaultKey == "" {
		defaultKey = DefaultTargetKey
	}

	r := &Resolver{
		repoRoot:      repoRoot,
		defaultTarget: defaultKey,
		targets:       make(map[string]Target),
		aliases:       make(map[string]string, len(opts.Aliases)),
	}
	for alias, key := range opts.Aliases {
		r.aliases[strings.ToLower(alias)] = key
	}

	// The default target is always registered, regardless of what exists on
	// disk yet — scaffolding flows create its directories on demand.
	r.targets[defaultKey] = Target{
		Key:         defaultKey,
		Package:     defaultKey,
		Root:        opts.DefaultRoot,
		Templates:   opts.PackageTemplates,
		RepoRoot:    repoRoot,
		ProjectRoot: repoRoot,
	}

	// Probed targets need both roots present to count as discovered. Keys
	// are canonicalized to lowercase so they stay reachable through Resolve.
	for _, p := range opts.Probes {
		if !dirExists(p.SrcRoot) || !dirExists(p.Templates) {
			continue
		}
		pkgDir, err := firstPackageDir(p.SrcRoot)
		if err != nil || pkgDir == "" {
			continue
		}
		key := strings.ToLower(p.Key)
		r.targets[key] = Target{
			Key:         key,
			Package:     key,
			Root:        pkgDir,
			Templates:   p.Templates,
			RepoRoot:    repoRoot,
			ProjectRoot: filepath.Dir(p.SrcRoot),
		}
	}

	return r, nil
}

// Resolve normalizes a selector (lowercase, alias-substituted, empty means
// the default target) and returns the matching Target.
func (r *Resolver) Resolve(name string) (Target, error) {
	key := r.normalize(name)
	t, ok := r.targets[key]
	if !ok {
		known := strings.Join(r.List(), ", ")
		if known == "" {
			known = "<none>"
		}
		return Target{}, fmt.Errorf("%w %q (known targets: %s)", ErrUnknownTarget, name, known)
	}
	return t, nil
}

// List returns the sorted set of discovered target keys.
func (r *Resolver) List() []string {
	keys := make([]string, 0, len(r.targets))
	for k := range r.targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultTarget returns the canonical key of the configured default target.
func (r *Resolver) DefaultTarget() string {
	return r.defaultTarget
}

// RepoRoot returns the repository root discovery ran against.
func (r *Resolver) RepoRoot() string {
	return r.repoRoot
}

func (r *Resolver) normalize(name string) string {
	if name == "" {
		return r.defaultTarget
	}
	key := strings.ToLower(name)
	if canonical, ok := r.aliases[key]; ok {
		return canonical
	}
	return key
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// firstPackageDir returns the first non-hidden subdirectory of srcRoot, the
// convention probed checkouts use for their single package root.
func firstPackageDir(srcRoot string) (string, error) {
	entries, err := os.ReadDir(srcRoot)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		return filepath.Join(srcRoot, name), nil
	}
	return "", nil
}
