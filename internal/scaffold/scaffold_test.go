package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dogfold-labs/dogfold/internal/registry"
	"github.com/dogfold-labs/dogfold/internal/target"
	"github.com/dogfold-labs/dogfold/internal/template"
)

const genericVerbTemplate = `package verbs

// {VERB_NAME} verb implementation.
type VerbNameVerb struct{}

// Execute runs the {VERB_NAME} verb.
func (v *VerbNameVerb) Execute(args []string) error {
	return nil
}
`

// newTestGenerator builds a generator over a temp repository laid out like
// the production defaults, with a generic verb template in place.
func newTestGenerator(t *testing.T) (*Generator, target.Target) {
	t.Helper()
	repoRoot := t.TempDir()

	r, err := target.NewResolver(target.Options{
		RepoRoot:         repoRoot,
		DefaultRoot:      filepath.Join(repoRoot, "internal", "dogfold"),
		PackageTemplates: filepath.Join(repoRoot, "templates"),
		DefaultTarget:    target.DefaultTargetKey,
	})
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}

	g := New(r)
	tgt, err := r.Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	writeTestFile(t, filepath.Join(tgt.Templates, "verbs", "verb.go.tmpl"), genericVerbTemplate)
	return g, tgt
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

func TestToSnake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BillingRule", "billing_rule"},
		{"Invoice", "invoice"},
		{"HTTPServer", "http_server"},
		{"ParseHTTPResponse", "parse_http_response"},
		{"Rule2X", "rule2_x"},
		{"already_snake", "already_snake"},
		{"lowercase", "lowercase"},
	}
	for _, tt := range tests {
		if got := ToSnake(tt.in); got != tt.want {
			t.Errorf("ToSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	t.Run("deterministic", func(t *testing.T) {
		if ToSnake("BillingRule") != ToSnake("BillingRule") {
			t.Error("ToSnake is not deterministic")
		}
	})
}

func TestRegisterDomain(t *testing.T) {
	g, tgt := newTestGenerator(t)

	result, err := g.RegisterDomain("", "billing")
	if err != nil {
		t.Fatalf("RegisterDomain() error: %v", err)
	}
	if result.Status != StatusCreated {
		t.Errorf("Status = %v, want StatusCreated", result.Status)
	}

	domainDir := filepath.Join(tgt.Root, "domains", "billing")
	for _, path := range []string{
		filepath.Join(tgt.Root, "domains", "doc.go"),
		filepath.Join(domainDir, "doc.go"),
		filepath.Join(domainDir, "classes", "doc.go"),
		filepath.Join(domainDir, "verbs", "doc.go"),
		filepath.Join(domainDir, "commands.go"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	t.Run("synthesized stub names the domain", func(t *testing.T) {
		content := readTestFile(t, filepath.Join(domainDir, "commands.go"))
		if !strings.Contains(content, "package billing") {
			t.Errorf("commands.go missing package clause:\n%s", content)
		}
		if !strings.Contains(content, `"billing"`) {
			t.Errorf("commands.go missing domain name:\n%s", content)
		}
	})

	t.Run("rerun is a skip and modifies nothing", func(t *testing.T) {
		before := readTestFile(t, filepath.Join(domainDir, "commands.go"))
		result, err := g.RegisterDomain("", "billing")
		if err != nil {
			t.Fatalf("RegisterDomain() error: %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", result.Status)
		}
		if after := readTestFile(t, filepath.Join(domainDir, "commands.go")); after != before {
			t.Error("rerun modified commands.go")
		}
	})

	t.Run("commands stub from template when present", func(t *testing.T) {
		writeTestFile(t, filepath.Join(tgt.Templates, "domain_commands.go.tmpl"),
			"package {DOMAIN_NAME}\n\n// {DOMAIN_NAME} commands from template.\n")
		result, err := g.RegisterDomain("", "shipping")
		if err != nil {
			t.Fatalf("RegisterDomain() error: %v", err)
		}
		if result.Status != StatusCreated {
			t.Errorf("Status = %v, want StatusCreated", result.Status)
		}
		content := readTestFile(t, filepath.Join(tgt.Root, "domains", "shipping", "commands.go"))
		if !strings.Contains(content, "// shipping commands from template.") {
			t.Errorf("template was not used:\n%s", content)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := g.RegisterDomain("nope", "billing")
		if !errors.Is(err, target.ErrUnknownTarget) {
			t.Errorf("error = %v, want ErrUnknownTarget", err)
		}
	})
}

func TestRegisterVerb(t *testing.T) {
	t.Run("top-level verb from generic template", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		result, err := g.RegisterVerb("", "sync", "")
		if err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		if result.Status != StatusCreated {
			t.Errorf("Status = %v, want StatusCreated", result.Status)
		}

		verbFile := filepath.Join(tgt.Root, "verbs", "sync.go")
		content := readTestFile(t, verbFile)
		if !strings.Contains(content, "// sync verb implementation.") {
			t.Errorf("verb name not substituted:\n%s", content)
		}
		if !strings.Contains(content, "type SyncVerb struct{}") {
			t.Errorf("derived type name not substituted:\n%s", content)
		}
		if _, err := os.Stat(filepath.Join(tgt.Root, "verbs", "doc.go")); err != nil {
			t.Errorf("package marker missing: %v", err)
		}
	})

	t.Run("domain-specific template wins, generic is the fallback", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		specific := filepath.Join(tgt.Templates, "domains", "billing", "verbs", "invoice.go.tmpl")
		writeTestFile(t, specific, "// domain-specific {VERB_NAME}\n")

		result, err := g.RegisterVerb("", "billing.invoice", "")
		if err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		content := readTestFile(t, result.Path)
		if !strings.Contains(content, "// domain-specific invoice") {
			t.Errorf("domain-specific template not used:\n%s", content)
		}

		// Delete the specific template; a fresh verb falls back without error.
		if err := os.Remove(specific); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		result, err = g.RegisterVerb("", "billing.refund", "")
		if err != nil {
			t.Fatalf("RegisterVerb() fallback error: %v", err)
		}
		content = readTestFile(t, result.Path)
		if !strings.Contains(content, "// refund verb implementation.") {
			t.Errorf("generic template not used:\n%s", content)
		}
	})

	t.Run("top-level verb-specific template beats generic", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		writeTestFile(t, filepath.Join(tgt.Templates, "verbs", "sync.go.tmpl"), "// just for {VERB_NAME}\n")
		result, err := g.RegisterVerb("", "sync", "")
		if err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		if content := readTestFile(t, result.Path); !strings.Contains(content, "// just for sync") {
			t.Errorf("verb-specific template not used:\n%s", content)
		}
	})

	t.Run("already exists is a non-fatal skip", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.RegisterVerb("", "sync", ""); err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		verbFile := filepath.Join(tgt.Root, "verbs", "sync.go")
		before := readTestFile(t, verbFile)

		result, err := g.RegisterVerb("", "sync", "")
		if err != nil {
			t.Fatalf("RegisterVerb() rerun error: %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", result.Status)
		}
		if !strings.Contains(result.Message, "already exists") {
			t.Errorf("Message = %q, want already-exists notice", result.Message)
		}
		if after := readTestFile(t, verbFile); after != before {
			t.Error("rerun modified the verb file")
		}
	})

	t.Run("qualified skip message names domain.verb", func(t *testing.T) {
		g, _ := newTestGenerator(t)
		if _, err := g.RegisterVerb("", "billing.invoice", ""); err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		result, err := g.RegisterVerb("", "billing.invoice", "")
		if err != nil {
			t.Fatalf("RegisterVerb() rerun error: %v", err)
		}
		if !strings.Contains(result.Message, "'billing.invoice'") {
			t.Errorf("Message = %q, want qualified name", result.Message)
		}
	})

	t.Run("invalid dotted names", func(t *testing.T) {
		g, _ := newTestGenerator(t)
		for _, name := range []string{".foo", "foo.", "a.b.c", "."} {
			if _, err := g.RegisterVerb("", name, ""); !errors.Is(err, ErrInvalidName) {
				t.Errorf("RegisterVerb(%q) error = %v, want ErrInvalidName", name, err)
			}
		}
	})

	t.Run("no template at any level", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if err := os.RemoveAll(tgt.Templates); err != nil {
			t.Fatalf("RemoveAll: %v", err)
		}
		_, err := g.RegisterVerb("", "sync", "")
		if !errors.Is(err, template.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("inline code is warned about, not dropped silently", func(t *testing.T) {
		g, _ := newTestGenerator(t)
		result, err := g.RegisterVerb("", "sync", "return nil")
		if err != nil {
			t.Fatalf("RegisterVerb() error: %v", err)
		}
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "inline code") {
				found = true
			}
		}
		if !found {
			t.Errorf("Warnings = %v, want inline-code notice", result.Warnings)
		}
	})
}

func TestDefineClass(t *testing.T) {
	t.Run("creates module and registry document", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		result, err := g.DefineClass("", ClassOptions{Name: "BillingRule"})
		if err != nil {
			t.Fatalf("DefineClass() error: %v", err)
		}
		if result.Status != StatusCreated {
			t.Errorf("Status = %v, want StatusCreated", result.Status)
		}

		classDir := filepath.Join(tgt.Root, "billing_rule")
		module := readTestFile(t, filepath.Join(classDir, "billing_rule.go"))
		for _, want := range []string{
			"package billing_rule",
			"type BillingRule struct",
			"type BillingRuleRegistry struct",
			"func New" + "BillingRuleRegistry",
			`Version:   "1.0.0"`,
		} {
			if !strings.Contains(module, want) {
				t.Errorf("module missing %q", want)
			}
		}

		reg := registry.New(filepath.Join(classDir, "billing_rule_registry.yaml"), "BillingRule", tgt.Package, "1.0.0")
		if err := reg.Load(); err != nil {
			t.Fatalf("Load() of seeded registry error: %v", err)
		}
		if reg.Type != "billingrule" {
			t.Errorf("registry Type = %q, want billingrule", reg.Type)
		}
		if reg.Target != tgt.Package {
			t.Errorf("registry Target = %q, want %q", reg.Target, tgt.Package)
		}
		if len(reg.List()) != 0 {
			t.Errorf("seeded registry items = %v, want empty", reg.List())
		}
	})

	t.Run("explicit version is stamped in", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.DefineClass("", ClassOptions{Name: "Widget", Version: "2.3.4"}); err != nil {
			t.Fatalf("DefineClass() error: %v", err)
		}
		module := readTestFile(t, filepath.Join(tgt.Root, "widget", "widget.go"))
		if !strings.Contains(module, `"2.3.4"`) {
			t.Errorf("version not substituted:\n%s", module)
		}
	})

	t.Run("invalid version is rejected before any write", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.DefineClass("", ClassOptions{Name: "Widget", Version: "not-a-version"}); err == nil {
			t.Fatal("DefineClass() error = nil, want semver failure")
		}
		if dirExists(filepath.Join(tgt.Root, "widget")) {
			t.Error("class directory was created despite invalid version")
		}
	})

	t.Run("rerun skips without touching files", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.DefineClass("", ClassOptions{Name: "Widget"}); err != nil {
			t.Fatalf("DefineClass() error: %v", err)
		}
		moduleFile := filepath.Join(tgt.Root, "widget", "widget.go")
		before := readTestFile(t, moduleFile)

		result, err := g.DefineClass("", ClassOptions{Name: "Widget"})
		if err != nil {
			t.Fatalf("DefineClass() rerun error: %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", result.Status)
		}
		if after := readTestFile(t, moduleFile); after != before {
			t.Error("rerun modified the module file")
		}
	})

	t.Run("domain-nested destination", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		result, err := g.DefineClass("", ClassOptions{Name: "TaxRate", Domain: "billing"})
		if err != nil {
			t.Fatalf("DefineClass() error: %v", err)
		}
		want := filepath.Join(tgt.Root, "domains", "billing", "classes", "tax_rate")
		if result.Path != want {
			t.Errorf("Path = %q, want %q", result.Path, want)
		}
	})

	t.Run("reverse removes the tree", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.DefineClass("", ClassOptions{Name: "Widget"}); err != nil {
			t.Fatalf("DefineClass() error: %v", err)
		}
		result, err := g.DefineClass("", ClassOptions{Name: "Widget", Reverse: true})
		if err != nil {
			t.Fatalf("DefineClass(reverse) error: %v", err)
		}
		if result.Status != StatusRemoved {
			t.Errorf("Status = %v, want StatusRemoved", result.Status)
		}
		if dirExists(filepath.Join(tgt.Root, "widget")) {
			t.Error("class directory still exists after reverse")
		}
	})

	t.Run("reverse of a missing class is a non-fatal skip", func(t *testing.T) {
		g, _ := newTestGenerator(t)
		result, err := g.DefineClass("", ClassOptions{Name: "Ghost", Reverse: true})
		if err != nil {
			t.Fatalf("DefineClass(reverse) error: %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", result.Status)
		}
	})
}

func TestDefineClassFile(t *testing.T) {
	t.Run("creates the target root on demand", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if dirExists(tgt.Root) {
			t.Fatalf("target root %s exists before any flow ran", tgt.Root)
		}
		result, err := g.DefineClassFile("", "Widget", "", "package widget\n")
		if err != nil {
			t.Fatalf("DefineClassFile() error: %v", err)
		}
		if result.Status != StatusCreated {
			t.Errorf("Status = %v, want StatusCreated", result.Status)
		}
		if _, err := os.Stat(filepath.Join(tgt.Root, "widget.go")); err != nil {
			t.Errorf("class file missing: %v", err)
		}
	})

	t.Run("inline content is written verbatim", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		inline := "package widget\n\ntype Widget struct{}"
		result, err := g.DefineClassFile("", "Widget", "", inline)
		if err != nil {
			t.Fatalf("DefineClassFile() error: %v", err)
		}
		got := readTestFile(t, filepath.Join(tgt.Root, "widget.go"))
		if got != inline+"\n" {
			t.Errorf("content = %q, want inline body with trailing newline", got)
		}
		if result.Status != StatusCreated {
			t.Errorf("Status = %v, want StatusCreated", result.Status)
		}
	})

	t.Run("class-specific template preferred over generic", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		writeTestFile(t, filepath.Join(tgt.Templates, "class.go.tmpl"), "// generic {CLASS_NAME}\n")
		writeTestFile(t, filepath.Join(tgt.Templates, "classes", "widget.go.tmpl"), "// specific {CLASS_NAME}\n")

		if _, err := g.DefineClassFile("", "Widget", "", ""); err != nil {
			t.Fatalf("DefineClassFile() error: %v", err)
		}
		if content := readTestFile(t, filepath.Join(tgt.Root, "widget.go")); !strings.Contains(content, "// specific Widget") {
			t.Errorf("specific template not used:\n%s", content)
		}

		if _, err := g.DefineClassFile("", "Gadget", "", ""); err != nil {
			t.Fatalf("DefineClassFile() error: %v", err)
		}
		if content := readTestFile(t, filepath.Join(tgt.Root, "gadget.go")); !strings.Contains(content, "// generic Gadget") {
			t.Errorf("generic template not used:\n%s", content)
		}
	})

	t.Run("never overwrites", func(t *testing.T) {
		g, tgt := newTestGenerator(t)
		if _, err := g.DefineClassFile("", "Widget", "", "package widget\n"); err != nil {
			t.Fatalf("DefineClassFile() error: %v", err)
		}
		result, err := g.DefineClassFile("", "Widget", "", "package widget // other\n")
		if err != nil {
			t.Fatalf("DefineClassFile() rerun error: %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", result.Status)
		}
		if got := readTestFile(t, filepath.Join(tgt.Root, "widget.go")); strings.Contains(got, "other") {
			t.Error("rerun overwrote the class file")
		}
	})
}

func TestBuildDomain(t *testing.T) {
	g, tgt := newTestGenerator(t)
	base := filepath.Join(tgt.Templates, "domains", "billing")
	writeTestFile(t, filepath.Join(base, "README.md"), "billing domain\n")
	writeTestFile(t, filepath.Join(base, "verbs", "invoice.go.tmpl"), "// invoice\n")
	writeTestFile(t, filepath.Join(base, "schemas", "invoice.schema.json"), "{}\n")

	result, err := g.BuildDomain("", "billing")
	if err != nil {
		t.Fatalf("BuildDomain() error: %v", err)
	}
	if !strings.Contains(result.Message, "3 files copied") {
		t.Errorf("Message = %q, want 3 files copied", result.Message)
	}

	domainDir := filepath.Join(tgt.Root, "domains", "billing")
	if _, err := os.Stat(filepath.Join(domainDir, "README.md")); err != nil {
		t.Errorf("regular file not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(domainDir, "verbs", "invoice.go.tmpl")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tgt.Root, "schemas", "billing", "invoice.schema.json")); err != nil {
		t.Errorf("schema not routed to schemas tree: %v", err)
	}
	if _, err := os.Stat(filepath.Join(domainDir, "schemas")); !os.IsNotExist(err) {
		t.Error("schemas dir should not be copied into the domain")
	}
	if _, err := os.Stat(filepath.Join(domainDir, "verbs", "doc.go")); err != nil {
		t.Errorf("verbs marker missing: %v", err)
	}

	t.Run("missing template tree", func(t *testing.T) {
		_, err := g.BuildDomain("", "ghost")
		if !errors.Is(err, template.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

// TestEndToEndBillingInvoice follows the full scenario: register the billing
// domain, then the billing.invoice verb. The generated file carries the
// substituted verb name, and the rerun is a skip that leaves it byte-identical.
func TestEndToEndBillingInvoice(t *testing.T) {
	g, tgt := newTestGenerator(t)

	if _, err := g.RegisterDomain("", "billing"); err != nil {
		t.Fatalf("RegisterDomain() error: %v", err)
	}

	result, err := g.RegisterVerb("", "billing.invoice", "")
	if err != nil {
		t.Fatalf("RegisterVerb() error: %v", err)
	}
	verbFile := filepath.Join(tgt.Root, "domains", "billing", "verbs", "invoice.go")
	if result.Path != verbFile {
		t.Errorf("Path = %q, want %q", result.Path, verbFile)
	}
	content := readTestFile(t, verbFile)
	if !strings.Contains(content, "invoice") {
		t.Errorf("generated verb does not mention invoice:\n%s", content)
	}

	rerun, err := g.RegisterVerb("", "billing.invoice", "")
	if err != nil {
		t.Fatalf("RegisterVerb() rerun error: %v", err)
	}
	if rerun.Status != StatusSkipped {
		t.Errorf("rerun Status = %v, want StatusSkipped", rerun.Status)
	}
	if !strings.Contains(rerun.Message, "already exists") {
		t.Errorf("rerun Message = %q, want already-exists notice", rerun.Message)
	}
	if after := readTestFile(t, verbFile); after != content {
		t.Error("rerun changed the generated file")
	}
}
