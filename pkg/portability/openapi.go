package portability

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"gopkg.in/yaml.v3"

	"github.com/civiclens/conduit-mock/pkg/conduit"
	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
)

// Document defaults.
const (
	DefaultTitle   = "Conduit API (mock)"
	DefaultVersion = "1.0.0"
	OpenAPIVersion = "3.0.3"
)

// securityScheme is the name of the token scheme in components.
const securityScheme = "Token"

var timestampType = reflect.TypeOf(conduit.Timestamp{})

// Options controls document metadata.
type Options struct {
	Title       string
	Version     string
	Description string
	// BasePath is prefixed to every route pattern.
	BasePath string
	// ServerURL is listed under servers when set.
	ServerURL string
}

// NewOpenAPI builds and validates an OpenAPI document describing routes.
func NewOpenAPI(routes []engine.Route, opts Options) (*openapi3.T, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       opts.Title,
			Version:     opts.Version,
			Description: opts.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
			SecuritySchemes: openapi3.SecuritySchemes{
				securityScheme: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type:        "apiKey",
					In:          "header",
					Name:        "Authorization",
					Description: `Send "Token <token>" as issued by login or registration.`,
				}},
			},
		},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.ServerURL}}
	}

	gen := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(customizeSchema))
	errorSchema, err := gen.NewSchemaRefForValue(conduit.ErrorBody{}, doc.Components.Schemas)
	if err != nil {
		return nil, &ExportError{Message: "failed to generate error schema", Cause: err}
	}

	base := strings.TrimSuffix(opts.BasePath, "/")
	for _, rt := range routes {
		op, err := newOperation(gen, doc.Components.Schemas, rt, errorSchema)
		if err != nil {
			return nil, err
		}
		path := base + convertPath(rt.Pattern)
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}
		item.SetOperation(rt.Method, op)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, &ExportError{Message: "generated document is invalid", Cause: err}
	}
	return doc, nil
}

func newOperation(gen *openapi3gen.Generator, schemas openapi3.Schemas, rt engine.Route, errorSchema *openapi3.SchemaRef) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.OperationID = rt.Name
	op.Summary = rt.Summary
	op.Tags = []string{tagFor(rt.Pattern)}

	for _, seg := range strings.Split(rt.Pattern, "/") {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
		}
	}
	for _, name := range rt.Query {
		schema := openapi3.NewStringSchema()
		if name == "limit" || name == "offset" {
			schema = openapi3.NewIntegerSchema().WithMin(0)
		}
		op.AddParameter(openapi3.NewQueryParameter(name).WithSchema(schema))
	}

	if rt.Request != nil {
		ref, err := gen.NewSchemaRefForValue(rt.Request, schemas)
		if err != nil {
			return nil, &ExportError{Route: rt.Name, Message: "failed to generate request schema", Cause: err}
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref),
		}
	}

	ref, err := gen.NewSchemaRefForValue(rt.Response, schemas)
	if err != nil {
		return nil, &ExportError{Route: rt.Name, Message: "failed to generate response schema", Cause: err}
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(rt.Status, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(http.StatusText(rt.Status)).WithJSONSchemaRef(ref),
	}))
	for _, status := range errorStatuses(rt) {
		op.Responses.Set(strconv.Itoa(status), &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(http.StatusText(status)).WithJSONSchemaRef(errorSchema),
		})
	}

	switch rt.Auth {
	case engine.AuthRequired:
		op.Security = &openapi3.SecurityRequirements{{securityScheme: []string{}}}
	case engine.AuthOptional:
		op.Security = &openapi3.SecurityRequirements{{securityScheme: []string{}}, {}}
	}
	return op, nil
}

// errorStatuses lists the failure codes a route can produce.
func errorStatuses(rt engine.Route) []int {
	var out []int
	if rt.Auth == engine.AuthRequired {
		out = append(out, http.StatusUnauthorized)
	}
	owned := strings.HasPrefix(rt.Pattern, "/articles/:slug") && !strings.HasSuffix(rt.Pattern, "/favorite")
	if owned && (rt.Method == http.MethodPut || rt.Method == http.MethodDelete) {
		out = append(out, http.StatusForbidden)
	}
	// Listing the comments of a missing article yields an empty list.
	listing := rt.Method == http.MethodGet && strings.HasSuffix(rt.Pattern, "/comments")
	if strings.Contains(rt.Pattern, ":") && !listing {
		out = append(out, http.StatusNotFound)
	}
	if rt.Request != nil || (rt.Method == http.MethodPost && strings.HasSuffix(rt.Pattern, "/follow")) {
		out = append(out, http.StatusUnprocessableEntity)
	}
	return out
}

// customizeSchema renders conduit.Timestamp as a date-time string.
func customizeSchema(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
	if t == timestampType {
		*schema = *openapi3.NewDateTimeSchema()
	}
	return nil
}

// convertPath converts :param segments to OpenAPI {param} form.
func convertPath(pattern string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			parts[i] = "{" + name + "}"
		}
	}
	return strings.Join(parts, "/")
}

// tagFor groups operations by their first path segment.
func tagFor(pattern string) string {
	first, _, _ := strings.Cut(strings.TrimPrefix(pattern, "/"), "/")
	switch first {
	case "user", "users":
		return "User and Authentication"
	case "profiles":
		return "Profile"
	case "articles":
		if strings.Contains(pattern, "/comments") {
			return "Comments"
		}
		if strings.HasSuffix(pattern, "/favorite") {
			return "Favorites"
		}
		return "Articles"
	case "tags":
		return "Tags"
	default:
		return first
	}
}

// topLevelOrder is the order of the root keys in YAML output.
var topLevelOrder = []string{"openapi", "info", "servers", "paths", "components"}

// Marshal encodes doc as indented JSON or as YAML. YAML output lists the
// root keys in the conventional order.
func Marshal(doc *openapi3.T, format config.Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &ExportError{Message: "failed to marshal OpenAPI document", Cause: err}
	}
	if format != config.FormatYAML {
		return append(data, '\n'), nil
	}

	// JSON is valid YAML; going through a node keeps every scalar's tag,
	// so keys such as "200" stay strings.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ExportError{Message: "failed to convert OpenAPI document to YAML", Cause: err}
	}
	resetStyle(&node)
	if len(node.Content) == 1 {
		orderKeys(node.Content[0], topLevelOrder)
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, &ExportError{Message: "failed to marshal OpenAPI document", Cause: err}
	}
	return out, nil
}

// Load parses and validates an OpenAPI document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// orderKeys moves the listed keys of mapping node m to the front, in order.
func orderKeys(m *yaml.Node, keys []string) {
	if m.Kind != yaml.MappingNode {
		return
	}
	pairs := make(map[string][2]*yaml.Node, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		pairs[m.Content[i].Value] = [2]*yaml.Node{m.Content[i], m.Content[i+1]}
	}
	ordered := make([]*yaml.Node, 0, len(m.Content))
	placed := make(map[string]bool, len(keys))
	for _, k := range keys {
		if p, ok := pairs[k]; ok {
			ordered = append(ordered, p[0], p[1])
			placed[k] = true
		}
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if !placed[m.Content[i].Value] {
			ordered = append(ordered, m.Content[i], m.Content[i+1])
		}
	}
	m.Content = ordered
}
