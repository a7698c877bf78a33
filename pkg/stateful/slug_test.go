package stateful

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Café Society!", "cafe-society"},
		{"Top 10 Tools in 2024", "top-10-tools-in-2024"},
		{"multiple---dashes___and   spaces", "multiple-dashes-and-spaces"},
		{"日本語", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestArticleSlug(t *testing.T) {
	assert.Equal(t, "hello-world-6", articleSlug("Hello World", 6))
	assert.Equal(t, "article-7", articleSlug("!!!", 7))
}
