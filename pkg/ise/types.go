package ise

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// RestResponse is the uniform wrapper returned for every call. It exposes
// both the raw body and a parsed view: some callers need bytes (file
// exports), some need structured access. Immutable after construction.
type RestResponse struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
}

// JSON returns a gjson view over the response body. XML responses are
// decoded to an equivalent JSON document by the response processor before
// the wrapper is built, so path queries work for both content types.
func (r *RestResponse) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Get queries the response body at a gjson path.
func (r *RestResponse) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Decode unmarshals the response body into v.
func (r *RestResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &DecodeError{ContentType: r.ContentType, Raw: r.Body, Err: err}
	}

	return nil
}

// IsJSON reports whether the response carried a JSON content type.
func (r *RestResponse) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// Link represents an ERS hyperlink.
type Link struct {
	Rel  string `json:"rel"            yaml:"rel"`
	Href string `json:"href"           yaml:"href"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// SearchResult is the ERS list envelope.
type SearchResult struct {
	Total     int    `json:"total"              yaml:"total"`
	Resources []Item `json:"resources"          yaml:"resources"`
	NextPage  *Link  `json:"nextPage,omitempty" yaml:"nextPage,omitempty"`
	PrevPage  *Link  `json:"prevPage,omitempty" yaml:"prevPage,omitempty"`
}

// SearchResultEnvelope wraps SearchResult as it appears on the wire.
type SearchResultEnvelope struct {
	SearchResult SearchResult `json:"SearchResult" yaml:"SearchResult"`
}

// Item is a summary entry inside a SearchResult.
type Item struct {
	ID          string `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Link        *Link  `json:"link,omitempty"        yaml:"link,omitempty"`
}

// VersionInfo is the /ers/config/versioninfo payload.
type VersionInfo struct {
	CurrentServerVersion string `json:"currentServerVersion" yaml:"currentServerVersion"`
	SupportedVersions    string `json:"supportedVersions"    yaml:"supportedVersions"`
	Link                 *Link  `json:"link,omitempty"       yaml:"link,omitempty"`
}
