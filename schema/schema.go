// Package schema builds JSON schema definitions for tool parameters
// from Go types.
package schema

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agrisense/agroadvisor/utils"
)

var (
	cache   = make(map[reflect.Type]*Schema)
	cacheMu sync.RWMutex
)

type Schema struct {
	*jsonschema.Schema
	// Parameters represents the function parameters definition,
	// suitable for publishing as a tool's input schema.
	Parameters *jsonschema.Schema
}

// New creates a new schema from the given type
func New(t reflect.Type) (*Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[t]; ok {
		return s, nil
	}

	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}
	cache[t] = s

	return s, nil
}

func (s *Schema) String() string {
	return utils.ToJSONIndent(s.Parameters)
}

func buildSchema(t reflect.Type) (*Schema, error) {
	schema := reflectType(t)

	funcDef, err := toFunctionSchema(schema)
	if err != nil {
		return nil, err
	}

	return &Schema{
		Schema:     schema,
		Parameters: funcDef,
	}, nil
}

// toFunctionSchema lifts the root definition out of the reflected schema
// and inlines all $defs references, since tool parameter schemas must be
// self-contained.
func toFunctionSchema(tSchema *jsonschema.Schema) (*jsonschema.Schema, error) {
	rootID := strings.TrimPrefix(tSchema.Ref, "#/$defs/")

	defs := make(map[string]*jsonschema.Schema)
	var root *jsonschema.Schema

	for name, def := range tSchema.Definitions {
		if name == rootID {
			root = def
		} else {
			defs[name] = def
		}
	}
	if root == nil {
		return nil, errors.Errorf("schema: root definition %q not found", rootID)
	}

	res := &jsonschema.Schema{
		Type:       root.Type,
		Properties: root.Properties,
		Required:   root.Required,
	}

	if err := resolveRefs(res.Properties, defs); err != nil {
		return nil, err
	}

	return res, nil
}

func resolveRefs(props *orderedmap.OrderedMap[string, *jsonschema.Schema], defs map[string]*jsonschema.Schema) error {
	if props == nil {
		return nil
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		if child.Ref != "" {
			name := strings.TrimPrefix(child.Ref, "#/$defs/")
			def, ok := defs[name]
			if !ok {
				return errors.Errorf("schema: unresolved reference %q", child.Ref)
			}
			pair.Value = def
			child = def
		}
		if child.Properties != nil {
			if err := resolveRefs(child.Properties, defs); err != nil {
				return err
			}
		}
		if child.Items != nil && child.Items.Ref != "" {
			name := strings.TrimPrefix(child.Items.Ref, "#/$defs/")
			def, ok := defs[name]
			if !ok {
				return errors.Errorf("schema: unresolved reference %q", child.Items.Ref)
			}
			child.Items = def
		}
	}
	return nil
}

// reflectType returns the json schema of the given type.
// Struct names get a package-path hash suffix so that same-named structs
// from different packages do not collide in $defs.
func reflectType(t reflect.Type) *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.Namer = func(t reflect.Type) string {
		name := t.Name()
		if t.Kind() == reflect.Struct {
			fullname := t.PkgPath() + "/" + t.Name()
			name = t.Name() + "@" + strconv.FormatUint(xxhash.Sum64String(fullname), 10)
		}
		return name
	}

	return r.ReflectFromType(t)
}
