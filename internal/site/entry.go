package site

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SidebarEntry is either a bare document path or a labelled link.
// It marshals as a plain string or as a {text, link} object respectively.
type SidebarEntry struct {
	path string
	link *NavLink
}

// Page returns an entry referencing a document path relative to the sidebar section.
func Page(path string) SidebarEntry { return SidebarEntry{path: path} }

// Link returns an entry with an explicit label and link.
func Link(text, link string) SidebarEntry {
	return SidebarEntry{link: &NavLink{Text: text, Link: link}}
}

// IsLink reports whether the entry is a labelled link.
func (e SidebarEntry) IsLink() bool { return e.link != nil }

// Path returns the document path for a bare entry, or the link target otherwise.
func (e SidebarEntry) Path() string {
	if e.link != nil {
		return e.link.Link
	}
	return e.path
}

// Label returns the link label, or "" for a bare entry.
func (e SidebarEntry) Label() string {
	if e.link != nil {
		return e.link.Text
	}
	return ""
}

func (e SidebarEntry) String() string {
	if e.link != nil {
		return fmt.Sprintf("%s -> %s", e.link.Text, e.link.Link)
	}
	return e.path
}

func (e SidebarEntry) MarshalJSON() ([]byte, error) {
	if e.link != nil {
		return json.Marshal(e.link)
	}
	return json.Marshal(e.path)
}

func (e *SidebarEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Page(s)
		return nil
	}
	var l NavLink
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("sidebar entry must be a string or {text, link}: %w", err)
	}
	*e = Link(l.Text, l.Link)
	return nil
}

func (e SidebarEntry) MarshalYAML() (any, error) {
	if e.link != nil {
		return e.link, nil
	}
	return e.path, nil
}

func (e *SidebarEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Page(node.Value)
		return nil
	case yaml.MappingNode:
		var l NavLink
		if err := node.Decode(&l); err != nil {
			return err
		}
		*e = Link(l.Text, l.Link)
		return nil
	default:
		return fmt.Errorf("sidebar entry at line %d must be a string or mapping", node.Line)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
