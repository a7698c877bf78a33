package portability

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
)

func TestNewOpenAPI(t *testing.T) {
	doc, err := NewOpenAPI(engine.Routes(), Options{BasePath: "/api", ServerURL: "http://localhost:3001/api"})
	require.NoError(t, err)

	assert.Equal(t, OpenAPIVersion, doc.OpenAPI)
	assert.Equal(t, DefaultTitle, doc.Info.Title)
	assert.Equal(t, DefaultVersion, doc.Info.Version)
	require.Len(t, doc.Servers, 1)

	// 19 routes over 11 distinct paths.
	assert.Equal(t, 11, doc.Paths.Len())

	item := doc.Paths.Value("/api/articles/{slug}/comments/{id}")
	require.NotNil(t, item)
	op := item.GetOperation(http.MethodDelete)
	require.NotNil(t, op)
	assert.Equal(t, "deleteComment", op.OperationID)
	assert.Equal(t, []string{"Comments"}, op.Tags)
	assert.Len(t, op.Parameters, 2)
	for _, code := range []int{200, 401, 403, 404} {
		assert.NotNil(t, op.Responses.Status(code), "status %d", code)
	}
	require.NotNil(t, op.Security)
	assert.Len(t, *op.Security, 1)
}

func TestNewOpenAPI_Schemas(t *testing.T) {
	doc, err := NewOpenAPI(engine.Routes(), Options{})
	require.NoError(t, err)

	op := doc.Paths.Value("/articles").GetOperation(http.MethodPost)
	require.NotNil(t, op)
	require.NotNil(t, op.RequestBody)
	body := op.RequestBody.Value.Content.Get("application/json").Schema.Value
	article := body.Properties["article"].Value
	require.NotNil(t, article)
	assert.Contains(t, article.Properties, "title")
	assert.Contains(t, article.Properties, "tagList")

	created := op.Responses.Status(http.StatusCreated)
	require.NotNil(t, created)
	resp := created.Value.Content.Get("application/json").Schema.Value
	createdAt := resp.Properties["article"].Value.Properties["createdAt"].Value
	assert.Equal(t, "date-time", createdAt.Format)
	assert.True(t, createdAt.Type.Is("string"))

	list := doc.Paths.Value("/articles").GetOperation(http.MethodGet)
	require.NotNil(t, list)
	names := make([]string, 0, len(list.Parameters))
	for _, p := range list.Parameters {
		names = append(names, p.Value.Name)
	}
	assert.Equal(t, []string{"tag", "author", "favorited", "limit", "offset"}, names)
	assert.Len(t, *list.Security, 2, "optional auth allows anonymous calls")

	tags := doc.Paths.Value("/tags").GetOperation(http.MethodGet)
	assert.Nil(t, tags.Security)
	assert.Nil(t, tags.Responses.Status(http.StatusNotFound))
}

func TestErrorStatuses(t *testing.T) {
	want := map[string][]int{
		"login":         {422},
		"currentUser":   {401},
		"getProfile":    {404},
		"follow":        {401, 404, 422},
		"listArticles":  nil,
		"updateArticle": {401, 403, 404, 422},
		"deleteArticle": {401, 403, 404},
		"favorite":      {401, 404},
		"listComments":  nil,
		"createComment": {401, 404, 422},
		"deleteComment": {401, 403, 404},
		"tags":          nil,
	}
	for _, rt := range engine.Routes() {
		expected, ok := want[rt.Name]
		if !ok {
			continue
		}
		t.Run(rt.Name, func(t *testing.T) {
			assert.Equal(t, expected, errorStatuses(rt))
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc, err := NewOpenAPI(engine.Routes(), Options{BasePath: "/api"})
	require.NoError(t, err)

	for _, format := range []config.Format{config.FormatJSON, config.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(doc, format)
			require.NoError(t, err)

			loaded, err := Load(context.Background(), data)
			require.NoError(t, err)
			assert.Equal(t, doc.Paths.Len(), loaded.Paths.Len())
			assert.NotNil(t, loaded.Paths.Value("/api/users/login"))
		})
	}
}

func TestMarshal_YAMLKeepsOrderAndQuotesStatusCodes(t *testing.T) {
	doc, err := NewOpenAPI(engine.Routes(), Options{})
	require.NoError(t, err)

	data, err := Marshal(doc, config.FormatYAML)
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	root := node.Content[0]
	assert.Equal(t, "openapi", root.Content[0].Value, "first key")

	assert.Contains(t, string(data), `"200":`)
}

func TestConvertPath(t *testing.T) {
	tests := map[string]string{
		"/tags":                        "/tags",
		"/articles/:slug":              "/articles/{slug}",
		"/articles/:slug/comments/:id": "/articles/{slug}/comments/{id}",
	}
	for in, want := range tests {
		assert.Equal(t, want, convertPath(in))
	}
}

func TestExportError(t *testing.T) {
	err := &ExportError{Route: "login", Message: "boom", Cause: assert.AnError}
	assert.Equal(t, "login: boom: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}
