package invoke

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/netpolicy-io/ise-client/internal/constants"
	isehttp "github.com/netpolicy-io/ise-client/internal/http"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// buildRequest assembles the transport request from a descriptor and the
// call arguments. Path substitution and body encoding failures are
// build-time errors; nothing is sent.
func buildRequest(desc *ise.EndpointDescriptor, args *ise.CallArgs) (*isehttp.Request, error) {
	if args == nil {
		args = &ise.CallArgs{}
	}

	path, err := expandPath(desc.PathTemplate, args.PathParams)
	if err != nil {
		return nil, err
	}

	req := &isehttp.Request{
		Method:  desc.Method,
		Path:    path,
		Query:   args.Query.ToValues(),
		Headers: make(map[string]string),
	}

	if desc.MediaType != "" {
		req.Headers[constants.MediaTypeHeader] = desc.MediaType
	}

	for key, value := range args.Headers {
		req.Headers[key] = value
	}

	err = encodeBody(desc, args, req)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// expandPath substitutes every {param} placeholder. A placeholder with no
// corresponding value aborts the call before any network I/O.
func expandPath(template string, params map[string]string) (string, error) {
	var builder strings.Builder

	rest := template

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			builder.WriteString(rest)

			break
		}

		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("%w: unclosed placeholder in %q", ise.ErrMissingPathParam, template)
		}

		name := rest[open+1 : open+closing]

		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: {%s} in %q", ise.ErrMissingPathParam, name, template)
		}

		builder.WriteString(rest[:open])
		builder.WriteString(url.PathEscape(value))
		rest = rest[open+closing+1:]
	}

	return builder.String(), nil
}

func encodeBody(desc *ise.EndpointDescriptor, args *ise.CallArgs, req *isehttp.Request) error {
	switch desc.Body {
	case ise.BodyNone:
		return nil

	case ise.BodyJSON:
		if args.Payload == nil {
			return nil
		}

		data, err := json.Marshal(args.Payload)
		if err != nil {
			return fmt.Errorf("marshaling JSON body: %w", err)
		}

		req.RawBody = data
		req.ContentType = "application/json"

		return nil

	case ise.BodyXML:
		return encodeXMLBody(desc, args, req)

	case ise.BodyMultipart:
		return encodeMultipartBody(args, req)

	default:
		return fmt.Errorf("%w: %d", ise.ErrUnsupportedBodyKind, desc.Body)
	}
}

func encodeXMLBody(desc *ise.EndpointDescriptor, args *ise.CallArgs, req *isehttp.Request) error {
	root := desc.XMLRoot

	var value any = args.Payload

	// A payload carrying only the root key is unwrapped so the document
	// does not nest the root twice.
	if inner, ok := args.Payload[root]; ok && len(args.Payload) == 1 {
		value = inner
	}

	data, err := ise.EncodeXML(root, value)
	if err != nil {
		return fmt.Errorf("encoding XML body: %w", err)
	}

	req.RawBody = data
	req.ContentType = "application/xml"
	req.Headers["Accept"] = "application/xml"

	return nil
}

func encodeMultipartBody(args *ise.CallArgs, req *isehttp.Request) error {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, part := range args.Parts {
		header := make(textproto.MIMEHeader)

		disposition := fmt.Sprintf(`form-data; name=%q`, part.Name)
		if part.Filename != "" {
			disposition = fmt.Sprintf(`form-data; name=%q; filename=%q`, part.Name, part.Filename)
		}

		header.Set("Content-Disposition", disposition)

		if part.ContentType != "" {
			header.Set("Content-Type", part.ContentType)
		}

		dst, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("creating multipart part %q: %w", part.Name, err)
		}

		_, err = dst.Write(part.Content)
		if err != nil {
			return fmt.Errorf("writing multipart part %q: %w", part.Name, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req.RawBody = buf.Bytes()
	req.ContentType = writer.FormDataContentType()

	return nil
}
