// Package registry implements the persisted data model for generated class
// instances: a versioned named collection with an explicit YAML document
// round trip. Loaded documents are checked against an embedded JSON schema;
// a missing document means "not created yet" and is not an error.
package registry
