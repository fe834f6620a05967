package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	specific := filepath.Join(dir, "domains", "billing", "verbs", "invoice.go.tmpl")
	generic := filepath.Join(dir, "verbs", "verb.go.tmpl")

	t.Run("specific wins over generic", func(t *testing.T) {
		writeFile(t, specific, "specific")
		writeFile(t, generic, "generic")
		got, err := Load(specific, generic)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got != "specific" {
			t.Errorf("Load() = %q, want %q", got, "specific")
		}
	})

	t.Run("falls back to generic", func(t *testing.T) {
		if err := os.Remove(specific); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		got, err := Load(specific, generic)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got != "generic" {
			t.Errorf("Load() = %q, want %q", got, "generic")
		}
	})

	t.Run("not found names the last probed path", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.go.tmpl")
		_, err := Load(specific, missing)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Load() error = %v, want ErrNotFound", err)
		}
		if !strings.Contains(err.Error(), missing) {
			t.Errorf("error %q does not name %s", err.Error(), missing)
		}
	})
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		b    Bindings
		want string
	}{
		{
			name: "verb tokens",
			text: "// {VERB_NAME} verb\ntype VerbNameVerb struct{}",
			b:    Bindings{VerbName: "invoice"},
			want: "// invoice verb\ntype InvoiceVerb struct{}",
		},
		{
			name: "class tokens",
			text: "package {SNAKE_NAME}\n\n// {CLASS_NAME} v{VERSION}",
			b:    Bindings{ClassName: "BillingRule", SnakeName: "billing_rule", Version: "1.0.0"},
			want: "package billing_rule\n\n// BillingRule v1.0.0",
		},
		{
			name: "domain token",
			text: "Use: \"{DOMAIN_NAME}\"",
			b:    Bindings{DomainName: "billing"},
			want: "Use: \"billing\"",
		},
		{
			name: "unrecognized tokens pass through",
			text: "{VERB_NAME} keeps {SOMETHING_ELSE}",
			b:    Bindings{VerbName: "invoice"},
			want: "invoice keeps {SOMETHING_ELSE}",
		},
		{
			name: "repeated occurrences all replaced",
			text: "{VERB_NAME} {VERB_NAME}",
			b:    Bindings{VerbName: "sync"},
			want: "sync sync",
		},
		{
			name: "empty bindings leave text untouched",
			text: "{CLASS_NAME} VerbNameVerb",
			b:    Bindings{},
			want: "{CLASS_NAME} VerbNameVerb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.text, tt.b); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubstituteIsOrderIndependent(t *testing.T) {
	// Distinct tokens never produce each other, so one pass suffices.
	text := "{CLASS_NAME}/{VERB_NAME}/{DOMAIN_NAME}"
	b := Bindings{ClassName: "A", VerbName: "b", DomainName: "c"}
	first := Substitute(text, b)
	second := Substitute(first, b)
	if first != second {
		t.Errorf("substitution not idempotent: %q then %q", first, second)
	}
}

func TestVerbIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"invoice", "InvoiceVerb"},
		{"sync", "SyncVerb"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VerbIdent(tt.in); got != tt.want {
			t.Errorf("VerbIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLint(t *testing.T) {
	t.Run("reports residual tokens once", func(t *testing.T) {
		got := Lint("x {FOO} y {FOO} z {BAR_2}")
		want := []string{"{FOO}", "{BAR_2}"}
		if len(got) != len(want) {
			t.Fatalf("Lint() = %v, want %v", got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("Lint()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("clean text yields nothing", func(t *testing.T) {
		if got := Lint("package billing\n\nfunc main() {}\n"); got != nil {
			t.Errorf("Lint() = %v, want nil", got)
		}
	})

	t.Run("lowercase braces are not tokens", func(t *testing.T) {
		if got := Lint("struct{name string}"); got != nil {
			t.Errorf("Lint() = %v, want nil", got)
		}
	})
}
