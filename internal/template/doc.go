// Package template loads scaffold template files and substitutes the fixed
// placeholder vocabulary ({CLASS_NAME}, {VERB_NAME}, {DOMAIN_NAME}, ...)
// with caller-supplied values. Lookup precedence is the caller's path order:
// specific templates before generic fallbacks.
package template
