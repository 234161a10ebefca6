package ise

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON payloads using
// path-based manipulation. Errors are tracked internally so calls can be
// chained; check Err or Map at the end.
//
// Example:
//
//	payload, err := ise.Body{}.
//	    Set("ERSEndPoint.name", "laptop-042").
//	    Set("ERSEndPoint.mac", "AA:BB:CC:DD:EE:FF").
//	    Set("ERSEndPoint.staticGroupAssignment", false).
//	    Map()
type Body struct {
	str string
	err error
}

// Set sets a value at the specified JSON path and returns a new Body.
// Once an error occurs, subsequent operations preserve it.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}

	return Body{str: result}
}

// Delete removes the value at the specified JSON path.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}

	return Body{str: result}
}

// String returns the JSON document and any error encountered while building.
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error encountered while building.
func (b Body) Err() error {
	return b.err
}

// Map returns the built document as the payload tree CallArgs expects.
func (b Body) Map() (map[string]any, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.str == "" {
		return map[string]any{}, nil
	}

	var payload map[string]any

	err := json.Unmarshal([]byte(b.str), &payload)
	if err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}

	return payload, nil
}
