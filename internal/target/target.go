package target

// Target describes a registered scaffolding target: a logical package with
// its own artifact root and template root. Targets are constructed once at
// resolver initialization and never mutated afterwards.
type Target struct {
	Key         string // canonical lowercase id, e.g., "dogfold-core"
	Package     string // display name, e.g., "dogfold-core"
	Root        string // absolute path scaffolds are written under
	Templates   string // absolute path templates are read from
	RepoRoot    string // repository checkout root
	ProjectRoot string // directory containing the target's build files
}
