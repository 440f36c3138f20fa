package router

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type SimpleType struct {
	Name string `json:"name"`
	Age  int    `json:"age,omitempty"`
}

type Parent struct {
	Name     string  `json:"name"`
	Children []Child `json:"children,omitempty"`
}

type Child struct {
	Name   string  `json:"name"`
	Parent *Parent `json:"parent,omitempty"`
}

type Everything struct {
	Flag      bool              `json:"flag"`
	Count     uint8             `json:"count"`
	Ratio     float64           `json:"ratio"`
	When      time.Time         `json:"when" doc:"Creation time"`
	Maybe     *time.Time        `json:"maybe,omitempty"`
	Raw       json.RawMessage   `json:"raw"`
	Tags      []string          `json:"tags"`
	Labels    map[string]string `json:"labels"`
	Status    string            `json:"status" enum:"open,closed"`
	Ignored   string            `json:"-"`
	unexposed string
	NoTag     string
}

func TestSchemaRef(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()

	ref := registry.ref(&SimpleType{})
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/SimpleType"}, ref)

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
		},
		"required": []string{"name"},
	}
	if diff := cmp.Diff(want, registry.schemas["SimpleType"]); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, registry.ref(nil))
}

func TestSchemaAllKinds(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(Everything{})

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flag":   map[string]any{"type": "boolean"},
			"count":  map[string]any{"type": "integer"},
			"ratio":  map[string]any{"type": "number"},
			"when":   map[string]any{"type": "string", "format": "date-time", "description": "Creation time"},
			"maybe":  map[string]any{"type": "string", "format": "date-time"},
			"raw":    map[string]any{"type": "object"},
			"tags":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"labels": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
			"status": map[string]any{"type": "string", "enum": []string{"open", "closed"}},
			"NoTag":  map[string]any{"type": "string"},
		},
		"required": []string{"flag", "count", "ratio", "when", "raw", "tags", "labels", "status", "NoTag"},
	}

	if diff := cmp.Diff(want, registry.schemas["Everything"]); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaCircularReference(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(Parent{})

	assert.Contains(t, registry.schemas, "Parent")
	assert.Contains(t, registry.schemas, "Child")

	child := registry.schemas["Child"]["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/Parent"}, child["parent"])

	parent := registry.schemas["Parent"]["properties"].(map[string]any)
	assert.Equal(t, map[string]any{
		"type":  "array",
		"items": map[string]any{"$ref": "#/components/schemas/Child"},
	}, parent["children"])
}

func TestSchemaAnonymousStructIsInlined(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	schema := registry.ref(struct {
		Status string `json:"status"`
	}{})

	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, registry.schemas)
}

func TestParseJSONTag(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		tag           string
		wantName      string
		wantOmitempty bool
	}{
		"empty":           {tag: "", wantName: "Field"},
		"named":           {tag: "title", wantName: "title"},
		"omitempty":       {tag: "antidote,omitempty", wantName: "antidote", wantOmitempty: true},
		"only omitempty":  {tag: ",omitempty", wantName: "Field", wantOmitempty: true},
		"other modifiers": {tag: "count,string", wantName: "count"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			name, omitempty := parseJSONTag(tc.tag, "Field")
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantOmitempty, omitempty)
		})
	}
}
