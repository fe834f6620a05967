// Package target resolves symbolic target names to concrete filesystem roots.
// A resolver discovers the available targets once at construction by probing
// known repository locations, then answers lookups (with alias and default
// handling) for the rest of the process lifetime.
package target
