package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{"index.html", "import.html", "abi.html", "not_found.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "not_found.html", map[string]any{"Title": "Not found"}))
	assert.Contains(t, buf.String(), "<title>Not found</title>")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
}
