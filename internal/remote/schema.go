package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todoclient/internal/model"
)

const (
	recordSchemaURL = "todo-record.json"
	newSchemaURL    = "todo-new.json"
)

// The record schema only checks shape. The new-record schema adds the rules
// user input must meet.
const recordSchema = `{
  "type": "object",
  "required": ["title", "description", "dueDate", "status"],
  "additionalProperties": false,
  "properties": {
    "title":       {"type": "string"},
    "description": {"type": ["string", "null"]},
    "dueDate":     {"type": ["string", "null"]},
    "status":      {"enum": ["PENDING", "DONE"]}
  }
}`

const newSchema = `{
  "$ref": "todo-record.json",
  "properties": {
    "title":   {"minLength": 1, "pattern": "\\S"},
    "dueDate": {"format": "date"}
  }
}`

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
	schemaErr  error
)

func compiled(url string) (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		c.AssertFormat = true
		for u, src := range map[string]string{recordSchemaURL: recordSchema, newSchemaURL: newSchema} {
			if err := c.AddResource(u, strings.NewReader(src)); err != nil {
				schemaErr = fmt.Errorf("add schema %s: %w", u, err)
				return
			}
		}
		schemas = map[string]*jsonschema.Schema{}
		for _, u := range []string{recordSchemaURL, newSchemaURL} {
			sch, err := c.Compile(u)
			if err != nil {
				schemaErr = fmt.Errorf("compile schema %s: %w", u, err)
				return
			}
			schemas[u] = sch
		}
	})
	if schemaErr != nil {
		return nil, schemaErr
	}
	return schemas[url], nil
}

// Validate checks a new record before it is sent: non-blank title, dueDate in
// YYYY-MM-DD form or absent, status PENDING or DONE.
func Validate(p model.Payload) error { return validate(newSchemaURL, p) }

// ValidateShape checks a replacement record. Replacements may carry fields
// back exactly as the server returned them, so only field types and the
// status enum are enforced.
func ValidateShape(p model.Payload) error { return validate(recordSchemaURL, p) }

func validate(url string, p model.Payload) error {
	s, err := compiled(url)
	if err != nil {
		return err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return schemaMessage(err)
	}
	return nil
}

// schemaMessage reduces a validation tree to its first leaf.
func schemaMessage(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if field == "" {
		return errors.New(leaf.Message)
	}
	return fmt.Errorf("%s: %s", field, leaf.Message)
}
