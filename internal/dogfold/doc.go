// Package dogfold is the artifact root of the built-in scaffolding target.
// Generated domains, verbs, and classes land in subpackages of this one.
package dogfold
