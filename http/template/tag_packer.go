package template

import (
	"errors"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"

	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/view"
)

const (
	cssGlob = assetsBase + "/assets/%s-*.css"
	jsGlob  = assetsBase + "/assets/%s-*.js"

	cssTag = `<link rel="stylesheet" href="%s">`
	jsTag  = `<script src="%s" type="module"></script>`
)

// TagPacker encloses the environment and filesystem so when called executing a template,
// emits the tag loading the JS or CSS of the named client entry.
//
// In development, the Vite dev server serves the entry's source and injects its CSS itself,
// so no stylesheet tag is emitted.
func TagPacker(env cryptodash.Environment, filesys fs.FS) func(string, bool) html.HTML {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	return func(name string, isCSS bool) html.HTML {
		tagTemplate, glob := jsTag, fmt.Sprintf(jsGlob, name)
		if isCSS {
			tagTemplate, glob = cssTag, fmt.Sprintf(cssGlob, name)
		}

		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			if isCSS {
				return ""
			}

			return html.HTML(fmt.Sprintf(tagTemplate, fmt.Sprintf("%s/src/%s.js", view.DefaultDevOrigin, name)))

		default:
			matches, err := fs.Glob(filesys, glob)
			if errors.Is(err, path.ErrBadPattern) {
				return html.HTML(fmt.Sprintf(tagTemplate, "error-bad-glob"))
			}
			if len(matches) == 0 {
				return html.HTML(fmt.Sprintf(tagTemplate, "error-not-found"))
			}
			return html.HTML(fmt.Sprintf(tagTemplate, "/"+matches[0]))
		}
	}
}
