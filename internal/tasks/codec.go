package tasks

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

// StorageKey is the single key the task list is persisted under.
const StorageKey = "tasks"

// ErrMalformed marks persisted data that is not an array of task records.
var ErrMalformed = errors.New("malformed task data")

const schemaURL = "tada://schemas/tasks.json"

// Unknown object fields are tolerated and dropped on decode; missing
// fields take their zero value.
const tasksSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"done": {"type": "boolean"}
		}
	}
}`

var schema = jsonschema.MustCompileString(schemaURL, tasksSchema)

// Encode serializes tasks in display order. A nil slice encodes as [].
func Encode(list []model.Task) (string, error) {
	if list == nil {
		list = []model.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted value. Errors wrap ErrMalformed.
func Decode(raw string) ([]model.Task, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, schemaMessage(err))
	}

	list := []model.Task{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	return list, nil
}

// schemaMessage picks the most specific validation failure.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", ve.InstanceLocation, ve.Message)
}
