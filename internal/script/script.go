// Package script replays JSON command scripts against a task store.
//
// A script looks like:
//
//	{
//	  "schema_version": 1,
//	  "commands": [
//	    {"op": "add", "text": "Buy milk"},
//	    {"op": "toggle", "id": "T1"},
//	    {"op": "begin_edit", "id": "T1"},
//	    {"op": "update_edit", "text": "Buy oat milk"},
//	    {"op": "save_edit", "id": "T1"}
//	  ]
//	}
//
// Scripts are validated against an embedded JSON Schema before they run.
// With the counter id scheme, ids are predictable (T1, T2, ...) so a
// script can refer to the tasks it creates.
package script

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist-go/internal/todo"
)

//go:embed script.schema.json
var schemaJSON string

const schemaURL = "https://github.com/nibzard/tasklist-go/script.schema.json"

// SchemaVersion is the only supported script version.
const SchemaVersion = 1

// Script is a sequence of commands.
type Script struct {
	SchemaVersion int            `json:"schema_version"`
	Commands      []todo.Command `json:"commands"`
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidScriptError collects every schema violation in a script.
type InvalidScriptError struct {
	Errors []*ValidationError
}

func (e *InvalidScriptError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		parts = append(parts, err.Error())
	}
	return "invalid script: " + strings.Join(parts, "; ")
}

// Schema returns the embedded JSON Schema document.
func Schema() string {
	return schemaJSON
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add script schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile script schema: %w", err)
	}
	return schema, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the script schema and decodes it.
func Parse(data []byte) (*Script, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// Run dispatches every command to store in order and returns the final state.
func Run(s *Script, store *todo.Store) todo.State {
	for _, cmd := range s.Commands {
		store.Dispatch(cmd)
	}
	return store.State()
}

func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	invalid := &InvalidScriptError{}
	collectSchemaErrors(invalid, ve)
	return invalid
}

func collectSchemaErrors(out *InvalidScriptError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		out.Errors = append(out.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/commands/0/op" into "commands[0].op".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
