package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Attr is a single HTML attribute of a head tag.
type Attr struct {
	Key   string
	Value string
}

// HeadTag describes one element injected into the generated <head>.
// Attributes keep their declaration order in every serialization.
// It marshals as the tuple [name, {attrs}].
type HeadTag struct {
	Name  string
	Attrs []Attr
}

// Get returns the value of attribute key.
func (t HeadTag) Get(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func link(attrs ...Attr) HeadTag { return HeadTag{Name: "link", Attrs: attrs} }

func meta(name, content string) HeadTag {
	return HeadTag{Name: "meta", Attrs: []Attr{{"name", name}, {"content", content}}}
}

// HeadTags returns the head tag descriptors for a site served under base.
// Icon paths are resolved against base (which must end with "/").
func HeadTags(base string) []HeadTag {
	icon := func(file string) string { return base + "icons/" + file }
	return []HeadTag{
		link(Attr{"rel", "icon"}, Attr{"type", "image/png"}, Attr{"sizes", "16x16"}, Attr{"href", icon("favicon-16x16.png")}),
		link(Attr{"rel", "icon"}, Attr{"type", "image/png"}, Attr{"sizes", "32x32"}, Attr{"href", icon("favicon-32x32.png")}),
		meta("application-name", SiteTitle),
		meta("apple-mobile-web-app-title", SiteTitle),
		meta("apple-mobile-web-app-capable", "yes"),
		meta("apple-mobile-web-app-status-bar-style", "black"),
		link(Attr{"rel", "apple-touch-icon"}, Attr{"href", icon("apple-touch-icon-152x152.png")}),
		link(Attr{"rel", "mask-icon"}, Attr{"href", icon("safari-pinned-tab.svg")}, Attr{"color", ThemeColor}),
		meta("msapplication-TileImage", icon("msapplication-icon-144x144.png")),
		meta("msapplication-TileColor", "#000000"),
		meta("theme-color", ThemeColor),
	}
}

func (t HeadTag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	name, err := json.Marshal(t.Name)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('[')
	buf.Write(name)
	buf.WriteString(",{")
	for i, a := range t.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(a.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(a.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}]")
	return buf.Bytes(), nil
}

func (t *HeadTag) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("head tag must be a [name, attrs] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Name); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw[1]))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("head tag attributes must be an object")
	}
	t.Attrs = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("head tag attribute %q: %w", key, err)
		}
		t.Attrs = append(t.Attrs, Attr{key, value})
	}
	return nil
}

func (t HeadTag) MarshalYAML() (any, error) {
	attrs := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range t.Attrs {
		attrs.Content = append(attrs.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: a.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: a.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: t.Name},
			attrs,
		},
	}, nil
}

func (t *HeadTag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("head tag at line %d must be a [name, attrs] pair", node.Line)
	}
	if err := node.Content[0].Decode(&t.Name); err != nil {
		return err
	}
	attrs := node.Content[1]
	if attrs.Kind != yaml.MappingNode {
		return fmt.Errorf("head tag attributes at line %d must be a mapping", attrs.Line)
	}
	t.Attrs = nil
	for i := 0; i+1 < len(attrs.Content); i += 2 {
		t.Attrs = append(t.Attrs, Attr{attrs.Content[i].Value, attrs.Content[i+1].Value})
	}
	return nil
}
