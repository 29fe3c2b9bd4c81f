package template_test

import (
	html "html/template"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/template"
)

func TestTagPacker(t *testing.T) {
	// Arrange
	built := fstest.MapFS{
		"client/dist/assets/main-1a2b3c.js":  {},
		"client/dist/assets/main-4d5e6f.css": {},
	}

	tcs := []struct {
		name     string
		entry    string
		isCSS    bool
		fn       func(string, bool) html.HTML
		expected html.HTML
	}{
		{"env-testing", "main", false, template.TagPacker(cryptodash.Testing, nil), ""},
		{"env-dev-js", "main", false, template.TagPacker(cryptodash.Development, nil), `<script src="http://localhost:8080/src/main.js" type="module"></script>`},
		{"env-dev-css", "main", true, template.TagPacker(cryptodash.Development, nil), ""},
		{"env-prod-js", "main", false, template.TagPacker(cryptodash.Production, built), `<script src="/client/dist/assets/main-1a2b3c.js" type="module"></script>`},
		{"env-prod-css", "main", true, template.TagPacker(cryptodash.Production, built), `<link rel="stylesheet" href="/client/dist/assets/main-4d5e6f.css">`},
		{"env-prod-missing", "other", false, template.TagPacker(cryptodash.Production, built), `<script src="error-not-found" type="module"></script>`},
		{"env-prod-bad-glob", "[", false, template.TagPacker(cryptodash.Production, built), `<script src="error-bad-glob" type="module"></script>`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := tc.fn(tc.entry, tc.isCSS)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
