// Package schema holds the bundled JSON Schema catalog and validates
// request and response payloads against it. The catalog is compiled once
// at first use and is immutable afterwards, so unsynchronized concurrent
// reads are safe.
package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

//go:embed catalog/*.json
var catalogFS embed.FS

// Registry is an indexed, read-only lookup of compiled schemas keyed by
// catalog ID (the file name without extension, e.g. "endpoint.create").
type Registry struct {
	once    sync.Once
	loadErr error
	schemas map[string]*gojsonschema.Schema
}

var defaultRegistry = &Registry{}

// Default returns the process-wide registry backed by the bundled catalog.
func Default() *Registry {
	return defaultRegistry
}

func (r *Registry) load() {
	r.schemas = make(map[string]*gojsonschema.Schema)

	entries, err := fs.ReadDir(catalogFS, "catalog")
	if err != nil {
		r.loadErr = fmt.Errorf("reading schema catalog: %w", err)

		return
	}

	for _, entry := range entries {
		name := entry.Name()

		data, err := catalogFS.ReadFile(path.Join("catalog", name))
		if err != nil {
			r.loadErr = fmt.Errorf("reading schema %s: %w", name, err)

			return
		}

		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			r.loadErr = fmt.Errorf("compiling schema %s: %w", name, err)

			return
		}

		r.schemas[strings.TrimSuffix(name, ".json")] = compiled
	}
}

// Has reports whether the catalog declares the given schema ID.
func (r *Registry) Has(schemaID string) bool {
	r.once.Do(r.load)

	_, ok := r.schemas[schemaID]

	return ok
}

// Validate checks value against the schema with the given catalog ID.
// Validation is pure: it inspects the value tree and performs no I/O.
// On failure it returns an *ise.ValidationError listing every failing
// path; the incoming flag and raw bytes are filled in by the caller.
func (r *Registry) Validate(schemaID string, value any) error {
	r.once.Do(r.load)

	if r.loadErr != nil {
		return r.loadErr
	}

	compiled, ok := r.schemas[schemaID]
	if !ok {
		return fmt.Errorf("%w: %s", ise.ErrSchemaNotFound, schemaID)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return fmt.Errorf("validating against %s: %w", schemaID, err)
	}

	if result.Valid() {
		return nil
	}

	failures := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		failures = append(failures, fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description()))
	}

	return &ise.ValidationError{SchemaID: schemaID, Failures: failures}
}
