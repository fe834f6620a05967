package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Registry is a versioned named collection of items, persisted as one YAML
// document. It is loaded lazily and saved explicitly; Save overwrites the
// document wholesale.
type Registry struct {
	Version   string
	Type      string
	Target    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any

	items map[string]*Item
	path  string
}

// document is the on-disk shape of a registry.
type document struct {
	RegistryVersion string           `yaml:"registry_version"`
	RegistryType    string           `yaml:"registry_type"`
	Target          string           `yaml:"target,omitempty"`
	CreatedAt       string           `yaml:"created_at"`
	UpdatedAt       string           `yaml:"updated_at"`
	Items           map[string]*Item `yaml:"items"`
	Metadata        map[string]any   `yaml:"metadata,omitempty"`
}

// New creates a registry for className instances, seeded with empty items
// and metadata identifying the class and the target package it belongs to.
func New(path, className, targetPkg, version string) *Registry {
	now := time.Now().UTC()
	return &Registry{
		Version:   version,
		Type:      strings.ToLower(className),
		Target:    targetPkg,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]any{
			"description": fmt.Sprintf("Registry for %s instances", className),
			"class_name":  className,
			"auto_backup": true,
		},
		items: make(map[string]*Item),
		path:  path,
	}
}

// Path returns the document path this registry saves to and loads from.
func (r *Registry) Path() string {
	return r.path
}

// Add inserts an item. It returns false without mutating anything when an
// item of the same name is already present.
func (r *Registry) Add(item *Item) bool {
	if _, exists := r.items[item.Name]; exists {
		return false
	}
	r.items[item.Name] = item
	return true
}

// Get returns the named item, or ok=false when absent.
func (r *Registry) Get(name string) (*Item, bool) {
	item, ok := r.items[name]
	return item, ok
}

// List returns all item names. Order is not significant; it is sorted here
// only so output is stable.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the named item, reporting whether it was present.
func (r *Registry) Remove(name string) bool {
	if _, ok := r.items[name]; !ok {
		return false
	}
	delete(r.items, name)
	return true
}

// Save writes the full registry document, overwriting any previous content
// and advancing the document's updated_at stamp.
func (r *Registry) Save() error {
	r.UpdatedAt = time.Now().UTC()

	doc := document{
		RegistryVersion: r.Version,
		RegistryType:    r.Type,
		Target:          r.Target,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339Nano),
		Items:           r.items,
		Metadata:        r.Metadata,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("writing registry %s: %w", r.path, err)
	}
	return nil
}

// Load replaces in-memory state from the document at Path. A missing
// document means the registry has not been created yet and is not an error;
// a malformed or schema-invalid document is.
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading registry %s: %w", r.path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating registry %s: %w", r.path, err)
	}
	if !result.Valid {
		return fmt.Errorf("registry %s is invalid: %s", r.path, result.Summary())
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing registry %s: %w", r.path, err)
	}

	r.Version = doc.RegistryVersion
	r.Type = doc.RegistryType
	r.Target = doc.Target
	r.Metadata = doc.Metadata
	if doc.CreatedAt != "" {
		ts, err := parseTimestamp(doc.CreatedAt)
		if err != nil {
			return fmt.Errorf("parsing registry created_at: %w", err)
		}
		r.CreatedAt = ts
	}
	if doc.UpdatedAt != "" {
		ts, err := parseTimestamp(doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("parsing registry updated_at: %w", err)
		}
		r.UpdatedAt = ts
	}

	r.items = make(map[string]*Item, len(doc.Items))
	for name, item := range doc.Items {
		r.items[name] = item
	}

	return nil
}
