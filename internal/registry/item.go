package registry

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// Attribute is one caller-supplied key/value pair attached to an item.
// Attributes keep their insertion order through a save/load round trip.
type Attribute struct {
	Key   string
	Value any
}

// Item is a named record in a registry. Name is unique within one registry;
// CreatedAt is immutable once set and UpdatedAt advances on modification.
type Item struct {
	Name       string
	Version    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Attributes []Attribute
}

// NewItem creates an item stamped with the current time.
func NewItem(name, version string, attrs ...Attribute) *Item {
	now := time.Now().UTC()
	return &Item{
		Name:       name,
		Version:    version,
		CreatedAt:  now,
		UpdatedAt:  now,
		Attributes: attrs,
	}
}

// Set stores an attribute, replacing an existing key in place, and advances
// UpdatedAt.
func (i *Item) Set(key string, value any) {
	for idx := range i.Attributes {
		if i.Attributes[idx].Key == key {
			i.Attributes[idx].Value = value
			i.Touch()
			return
		}
	}
	i.Attributes = append(i.Attributes, Attribute{Key: key, Value: value})
	i.Touch()
}

// Attr returns the value for key and whether it is present.
func (i *Item) Attr(key string) (any, bool) {
	for _, a := range i.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Touch advances UpdatedAt, keeping it monotonic even within one clock tick.
func (i *Item) Touch() {
	now := time.Now().UTC()
	if !now.After(i.UpdatedAt) {
		now = i.UpdatedAt.Add(time.Nanosecond)
	}
	i.UpdatedAt = now
}

// Reserved mapping keys; everything else round-trips through Attributes.
const (
	keyName      = "name"
	keyVersion   = "version"
	keyCreatedAt = "created_at"
	keyUpdatedAt = "updated_at"
)

// MarshalYAML emits the item as a mapping with the fixed fields first and
// attributes after them in insertion order.
func (i *Item) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	appendPair := func(key string, value any) error {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(value); err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
		return nil
	}

	if err := appendPair(keyName, i.Name); err != nil {
		return nil, err
	}
	if err := appendPair(keyVersion, i.Version); err != nil {
		return nil, err
	}
	if err := appendPair(keyCreatedAt, i.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	if err := appendPair(keyUpdatedAt, i.UpdatedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	for _, a := range i.Attributes {
		if err := appendPair(a.Key, a.Value); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// UnmarshalYAML reads the fixed fields and folds every other mapping key
// into Attributes, preserving document order.
func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("registry item must be a mapping, got %v", node.Kind)
	}

	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		keyNode, valNode := node.Content[idx], node.Content[idx+1]
		switch keyNode.Value {
		case keyName:
			i.Name = valNode.Value
		case keyVersion:
			i.Version = valNode.Value
		case keyCreatedAt:
			ts, err := parseTimestamp(valNode.Value)
			if err != nil {
				return fmt.Errorf("parsing created_at: %w", err)
			}
			i.CreatedAt = ts
		case keyUpdatedAt:
			ts, err := parseTimestamp(valNode.Value)
			if err != nil {
				return fmt.Errorf("parsing updated_at: %w", err)
			}
			i.UpdatedAt = ts
		default:
			var value any
			if err := valNode.Decode(&value); err != nil {
				return fmt.Errorf("decoding attribute %q: %w", keyNode.Value, err)
			}
			i.Attributes = append(i.Attributes, Attribute{Key: keyNode.Value, Value: value})
		}
	}

	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
