package invoke

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	isehttp "github.com/netpolicy-io/ise-client/internal/http"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// process interprets a raw 2xx response: decodes the body by observed
// content type, optionally validates it against the declared per-status
// schema, and assembles the uniform wrapper. A malformed body never
// panics; the wrapper with the raw bytes is returned alongside the
// *ise.DecodeError so the caller always keeps access to the payload.
func (i *Invoker) process(desc *ise.EndpointDescriptor, raw *isehttp.Response) (*ise.RestResponse, error) {
	contentType := raw.Headers.Get("Content-Type")

	resp := &ise.RestResponse{
		StatusCode:  raw.StatusCode,
		Headers:     raw.Headers,
		Body:        raw.Body,
		ContentType: contentType,
	}

	if len(raw.Body) == 0 {
		return resp, nil
	}

	if strings.Contains(contentType, "xml") {
		// Mirror the request codec so round-trip fidelity holds: the
		// decoded tree is re-serialized as JSON for the uniform view,
		// the raw XML stays in DecodeError on failure.
		tree, err := ise.DecodeXML(raw.Body)
		if err != nil {
			return resp, err
		}

		jsonBody, err := json.Marshal(tree)
		if err != nil {
			return resp, &ise.DecodeError{ContentType: contentType, Raw: raw.Body, Err: err}
		}

		resp.Body = jsonBody
	} else if !gjson.ValidBytes(resp.Body) {
		return resp, &ise.DecodeError{ContentType: contentType, Raw: raw.Body, Err: errInvalidJSON}
	}

	schemaID, declared := desc.ResponseSchemas[raw.StatusCode]
	if declared && i.validateResponses {
		err := i.validateResponse(schemaID, resp)
		if err != nil {
			return resp, err
		}
	}

	return resp, nil
}

// validateResponse checks the decoded body against the declared schema.
// A failure is a distinct error kind and the raw response stays
// available to the caller.
func (i *Invoker) validateResponse(schemaID string, resp *ise.RestResponse) error {
	var value any

	err := json.Unmarshal(resp.Body, &value)
	if err != nil {
		return &ise.DecodeError{ContentType: resp.ContentType, Raw: resp.Body, Err: err}
	}

	err = i.schemas.Validate(schemaID, value)
	if err != nil {
		validationErr := &ise.ValidationError{}
		if errors.As(err, &validationErr) {
			validationErr.Incoming = true
			validationErr.Raw = resp.Body

			return validationErr
		}

		return err
	}

	return nil
}

var errInvalidJSON = errors.New("body is not valid JSON")
