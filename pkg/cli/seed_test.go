package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSeedPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "nested/b.yaml", "nested/deeper/c.json", "notes.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	join := func(parts ...string) string { return filepath.Join(append([]string{dir}, parts...)...) }

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  bool
	}{
		{
			name:     "doublestar",
			patterns: []string{join("**", "*.yaml")},
			want:     []string{join("a.yaml"), join("nested", "b.yaml")},
		},
		{
			name:     "alternatives",
			patterns: []string{join("nested", "**", "*.{yaml,json}")},
			want:     []string{join("nested", "b.yaml"), join("nested", "deeper", "c.json")},
		},
		{
			name:     "duplicates collapse",
			patterns: []string{join("a.yaml"), join("*.yaml")},
			want:     []string{join("a.yaml")},
		},
		{
			name:     "literal missing file is kept",
			patterns: []string{join("missing.yaml")},
			want:     []string{join("missing.yaml")},
		},
		{
			name:     "glob without matches",
			patterns: []string{join("*.toml")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandSeedPatterns(tt.patterns)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
