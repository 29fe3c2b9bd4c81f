package template_test

import (
	"bytes"
	html "html/template"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash/http/template"
)

type testFn func(*testing.T, *html.Template, error)

func TestParse(t *testing.T) {
	stub := []byte("<!DOCTYPE html>\n<html></html>")
	tcs := []struct {
		name   string
		parser *template.Parse
		fns    map[string]any
		fps    []string
		assert testFn
	}{
		{
			name:   "Zero-Value",
			parser: template.NewParser(template.WithFS(fstest.MapFS{})),
			fps:    []string{},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-String",
			parser: template.NewParser(template.WithFS(fstest.MapFS{})),
			fps:    []string{"", ""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "No-File",
			parser: template.NewParser(template.WithFS(fstest.MapFS{})),
			fps:    []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NotNil(t, err)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Not-Empty-File",
			parser: template.NewParser(template.WithFS(fstest.MapFS{"example.tmpl": {Data: stub}})),
			fps:    []string{"", "example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, stub, b.Bytes())
			},
		},
		{
			name: "Many-Files",
			parser: template.NewParser(template.WithFS(fstest.MapFS{
				"example.tmpl": {Data: []byte(`<!DOCTYPE html><html>{{ template "test" }}</html>`)},
				"test.tmpl":    {Data: []byte(`{{ define "test" }}<p>sup</p>{{ end }}`)},
			})),
			fps: []string{"example.tmpl", "test.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.ExecuteTemplate(b, "example.tmpl", nil))
				require.Equal(t, "<!DOCTYPE html><html><p>sup</p></html>", b.String())
			},
		},
		{
			name: "Add-Fns",
			parser: template.NewParser(template.WithFS(fstest.MapFS{
				"example.tmpl": {Data: []byte(`<!DOCTYPE html><html>{{ test }} {{ second "cool" }}</html>`)},
			})),
			fns: map[string]any{
				"test":   func() string { return "test" },
				"second": func(s string) string { return s },
			},
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "<!DOCTYPE html><html>test cool</html>", b.String())
			},
		},
		{
			name:   "Embedded-Fallback",
			parser: template.NewParser(template.WithFS(fstest.MapFS{}), template.WithFuncs(html.FuncMap{template.FnRootURL: template.RootURL(nil)})),
			fps:    []string{template.ErrTmpl},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, map[string]any{"Contact": "write us"}))
				require.Contains(t, b.String(), "write us")
			},
		},
		{
			name: "User-Overrides-Embedded",
			parser: template.NewParser(template.WithFS(fstest.MapFS{
				template.ErrTmpl: {Data: []byte("custom")},
			})),
			fps: []string{template.ErrTmpl},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "custom", b.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.fns {
				tc.parser.AddFn(k, v)
			}

			tmpl, err := tc.parser.Parse(tc.fps...)
			tc.assert(t, tmpl, err)
		})
	}
}
