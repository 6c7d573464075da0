package todo

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskcli/internal/utils"
)

//go:embed tasks.schema.json
var collectionSchema string

const collectionSchemaURL = "https://taskcli.local/tasks.schema.json"

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

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

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
	Tasks      int  // number of records in the collection
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// CollectionSchema returns the compiled JSON Schema for the task file.
func CollectionSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(collectionSchemaURL, bytes.NewReader([]byte(collectionSchema))); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(collectionSchemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateCollection checks raw task file contents. Unlike decoding for
// normal use, it reports every problem it finds: JSON syntax, schema
// violations (when useSchema is set), records that fail to decode, and
// duplicate ids.
func ValidateCollection(data []byte, useSchema bool) *ValidationResult {
	result := newResult()

	var doc any
	if err := DecodeDocument(data, &doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse task file: %w", err)})
		return result
	}

	if useSchema {
		schema, err := CollectionSchema()
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("JSON Schema validation not available: %v", err))
		} else {
			result.UsedSchema = true
			if err := schema.Validate(doc); err != nil {
				appendSchemaErrors(result, err)
			}
		}
	}

	items, ok := doc.([]any)
	if !ok {
		result.fail(&ValidationError{Err: fmt.Errorf("expected a top-level array, got %T", doc)})
		return result
	}
	result.Tasks = len(items)

	seen := make(map[int]int, len(items))
	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			result.fail(&ValidationError{Path: path, Err: fmt.Errorf("expected an object, got %T", item)})
			continue
		}
		task, err := FromRecord(Record(obj))
		if err != nil {
			result.fail(&ValidationError{Path: path, Err: err})
			continue
		}
		if task.Due != "" && !IsValidDate(task.Due) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.due: %q is not a YYYY-MM-DD date", path, task.Due))
		}
		if prev, dup := seen[task.ID]; dup {
			result.fail(&ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %d (also at [%d])", task.ID, prev),
			})
			continue
		}
		seen[task.ID] = i
	}

	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.fail(err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.fail(&ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
