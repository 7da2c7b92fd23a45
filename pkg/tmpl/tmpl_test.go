package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type link struct {
	URL  string
	Host string
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr string
	}{
		{
			name: "field",
			tmpl: "firefox --new-tab {{ .URL }}",
			data: link{URL: "https://go.dev"},
			want: "firefox --new-tab https://go.dev",
		},
		{
			name: "quoted",
			tmpl: "open {{ .URL | shq }}",
			data: link{URL: "https://example.com/it's"},
			want: `open 'https://example.com/it'\''s'`,
		},
		{
			name: "lower and join",
			tmpl: `{{ lower .Host }} {{ join .Args "," }}`,
			data: map[string]any{"Host": "GO.DEV", "Args": []string{"a", "b"}},
			want: "go.dev a,b",
		},
		{
			name:    "missing key",
			tmpl:    "{{ .Nope }}",
			data:    map[string]string{},
			wantErr: "execute template",
		},
		{
			name:    "bad syntax",
			tmpl:    "{{ .URL",
			data:    link{},
			wantErr: "parse template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "''", ShellQuote(""))
	assert.Equal(t, "'a b'", ShellQuote("a b"))
	assert.Equal(t, `'a'\''b'`, ShellQuote("a'b"))
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, IsTemplate("open {{ .URL }}"))
	assert.False(t, IsTemplate("xdg-open"))
}
