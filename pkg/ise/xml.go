package ise

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/clbanning/mxj/v2"
)

// EncodeXML converts a payload tree to an XML document rooted at root.
//
// Conventions mirror the decoder so round-trips are deterministic: child
// keys are emitted in sorted order, a key prefixed with "-" becomes an
// attribute, the "#text" key becomes character data, and slice values
// repeat the element once per item.
func EncodeXML(root string, value any) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	err := encodeXMLElement(&buf, root, value)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeXMLElement(buf *bytes.Buffer, name string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		return encodeXMLObject(buf, name, v)
	case []any:
		for _, item := range v {
			err := encodeXMLElement(buf, name, item)
			if err != nil {
				return err
			}
		}

		return nil
	default:
		buf.WriteString("<" + name + ">")
		writeXMLScalar(buf, v)
		buf.WriteString("</" + name + ">")

		return nil
	}
}

func encodeXMLObject(buf *bytes.Buffer, name string, obj map[string]any) error {
	attrs := make([]string, 0, len(obj))
	children := make([]string, 0, len(obj))
	hasText := false

	for key := range obj {
		switch {
		case key == "#text":
			hasText = true
		case len(key) > 1 && key[0] == '-':
			attrs = append(attrs, key)
		default:
			children = append(children, key)
		}
	}

	sort.Strings(attrs)
	sort.Strings(children)

	buf.WriteString("<" + name)

	for _, key := range attrs {
		buf.WriteString(" " + key[1:] + `="`)
		writeXMLScalar(buf, obj[key])
		buf.WriteString(`"`)
	}

	buf.WriteString(">")

	if hasText {
		writeXMLScalar(buf, obj["#text"])
	}

	for _, key := range children {
		err := encodeXMLElement(buf, key, obj[key])
		if err != nil {
			return err
		}
	}

	buf.WriteString("</" + name + ">")

	return nil
}

func writeXMLScalar(buf *bytes.Buffer, value any) {
	var text string

	switch v := value.(type) {
	case nil:
		return
	case string:
		text = v
	case bool:
		text = strconv.FormatBool(v)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	default:
		text = fmt.Sprintf("%v", v)
	}

	_ = xml.EscapeText(buf, []byte(text))
}

// DecodeXML converts an XML document back to a payload tree, casting
// numeric and boolean character data so a decode of an encoded tree
// yields the original values. The root element stays as the single
// top-level key.
//
// The cast is by shape, not by schema: XML carries no type information,
// so a string whose text parses as a number or boolean ("123", "true")
// comes back as float64 or bool rather than string. Callers that need
// such values as strings must convert after decoding.
func DecodeXML(data []byte) (map[string]any, error) {
	mv, err := mxj.NewMapXml(data, true)
	if err != nil {
		return nil, &DecodeError{ContentType: "application/xml", Raw: data, Err: err}
	}

	return map[string]any(mv), nil
}
