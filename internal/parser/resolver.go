package parser

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"smart-api-client/internal/types"
)

// methodOrder is the precedence used to pick an operation when the caller
// gives no method hint. kin-openapi exposes operations as a map, so document
// declaration order is not observable; a fixed precedence keeps the pick
// deterministic across spec sources.
var methodOrder = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"}

// contentTypeOrder is the precedence used to pick a request body media type.
var contentTypeOrder = []string{"application/json", "application/x-www-form-urlencoded"}

// Resolve walks the OpenAPI document and returns the request shape for the
// given endpoint path: effective method, required body fields with their
// primitive types, body content type, and required headers.
//
// Resolution never fails hard. A missing path, operation, or schema degrades
// to an empty descriptor so callers can fall back to their own defaults; a
// malformed body schema (a required name absent from properties, or a
// property without a type) clears the body portion of the descriptor but
// keeps the method and headers.
func Resolve(doc *openapi3.T, path, methodHint string) types.Descriptor {
	desc := types.Descriptor{Path: path}
	if doc == nil || doc.Paths == nil {
		return desc
	}

	item := doc.Paths.Find(path)
	if item == nil {
		return desc
	}

	method, op := selectOperation(item, methodHint)
	if op == nil {
		return desc
	}
	desc.Method = method

	desc.Fields, desc.ContentType = bodyFields(op)
	desc.Headers = requiredHeaders(op)
	return desc
}

// selectOperation picks the operation for the hinted method, or the first
// declared operation in methodOrder precedence when no hint is given.
func selectOperation(item *openapi3.PathItem, hint string) (string, *openapi3.Operation) {
	if hint != "" {
		method := strings.ToUpper(hint)
		if !recognizedMethod(method) {
			return "", nil
		}
		return method, item.GetOperation(method)
	}

	for _, method := range methodOrder {
		if op := item.GetOperation(method); op != nil {
			return method, op
		}
	}
	return "", nil
}

func recognizedMethod(method string) bool {
	for _, m := range methodOrder {
		if m == method {
			return true
		}
	}
	return false
}

// bodyFields reads the operation's request body schema and returns its
// required fields, in the order the schema's required list declares them,
// together with the selected content type.
func bodyFields(op *openapi3.Operation) ([]types.Field, string) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, ""
	}

	contentType, media := selectContent(op.RequestBody.Value.Content)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, ""
	}

	schema := media.Schema.Value
	fields := make([]types.Field, 0, len(schema.Required))
	for _, name := range schema.Required {
		prop, ok := schema.Properties[name]
		typ := schemaType(prop)
		if !ok || typ == "" {
			// Required name without a typed property: the schema is
			// malformed, so the whole body resolution is abandoned.
			return nil, ""
		}
		fields = append(fields, types.Field{Name: name, Type: typ})
	}

	return fields, contentType
}

// selectContent picks a media type from the request body content map:
// preferred types first, then lexicographically smallest.
func selectContent(content openapi3.Content) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	for _, ct := range contentTypeOrder {
		if media, ok := content[ct]; ok {
			return ct, media
		}
	}

	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0], content[names[0]]
}

// requiredHeaders scans the operation's parameters for required header
// entries. Headers are resolved independently of the body; a header with no
// declared type defaults to string.
func requiredHeaders(op *openapi3.Operation) []types.Field {
	var headers []types.Field
	for _, ref := range op.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		param := ref.Value
		if param.In != openapi3.ParameterInHeader || !param.Required {
			continue
		}
		typ := schemaType(param.Schema)
		if typ == "" {
			typ = "string"
		}
		headers = append(headers, types.Field{Name: param.Name, Type: typ})
	}
	return headers
}

func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil || len(*ref.Value.Type) == 0 {
		return ""
	}
	return (*ref.Value.Type)[0]
}
