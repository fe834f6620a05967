package template

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when no template exists at any precedence level.
var ErrNotFound = errors.New("template not found")

// Placeholder tokens recognized by Substitute.
const (
	TokenClassName  = "{CLASS_NAME}"
	TokenVerbName   = "{VERB_NAME}"
	TokenDomainName = "{DOMAIN_NAME}"
	TokenSnakeName  = "{SNAKE_NAME}"
	TokenVersion    = "{VERSION}"
	TokenCreatedAt  = "{CREATED_AT}"

	// tokenVerbIdent is the derived identifier token: it is replaced by the
	// title-cased verb name with the "Verb" suffix (invoice -> InvoiceVerb).
	tokenVerbIdent = "VerbNameVerb"
)

var titleCaser = cases.Title(language.English)

// tokenShape matches residual placeholder-shaped text after substitution.
var tokenShape = regexp.MustCompile(`\{[A-Z][A-Z0-9_]*\}`)

// Bindings carries the values substituted into a template. Empty fields
// leave their tokens untouched.
type Bindings struct {
	ClassName  string
	VerbName   string
	DomainName string
	SnakeName  string
	Version    string
	CreatedAt  string
}

// Load returns the contents of the first path that exists, honoring the
// caller's precedence order (specific paths before generic ones). When none
// exist it fails with ErrNotFound naming the last path probed.
func Load(paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: no template paths given", ErrNotFound)
	}

	var last string
	for _, path := range paths {
		last = path
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading template %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, last)
}

// Substitute replaces every occurrence of each recognized placeholder with
// its bound value. Substitution is pure and order-independent across
// distinct tokens; unrecognized tokens pass through untouched (see Lint).
func Substitute(text string, b Bindings) string {
	replace := func(token, value string) {
		if value != "" {
			text = strings.ReplaceAll(text, token, value)
		}
	}

	replace(TokenClassName, b.ClassName)
	replace(TokenVerbName, b.VerbName)
	replace(TokenDomainName, b.DomainName)
	replace(TokenSnakeName, b.SnakeName)
	replace(TokenVersion, b.Version)
	replace(TokenCreatedAt, b.CreatedAt)
	replace(tokenVerbIdent, VerbIdent(b.VerbName))

	return text
}

// VerbIdent derives the generated type name for a verb: title-cased with
// the "Verb" suffix.
func VerbIdent(verbName string) string {
	if verbName == "" {
		return ""
	}
	return titleCaser.String(verbName) + "Verb"
}

// Lint reports placeholder-shaped tokens still present in substituted text.
// Templates are intentionally free-form, so leftovers are warnings for the
// caller to surface, not errors.
func Lint(text string) []string {
	matches := tokenShape.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var tokens []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			tokens = append(tokens, m)
		}
	}
	return tokens
}
