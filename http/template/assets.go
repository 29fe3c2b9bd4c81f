package template

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/view"
)

const assetsBase = "client/dist"

// AssetURI returns a template function resolving a path under the client's build output to the URI serving it.
//
// In testing, every path resolves to "". In development, paths resolve against the Vite dev server.
// Otherwise, Vite's content-hashed copy of the file is preferred over the path as given.
// Resolved URIs are remembered, since the build output does not change while serving.
func AssetURI(env cryptodash.Environment, filesys fs.FS) func(string) string {
	switch {
	case env.IsTesting():
		return func(string) string { return "" }

	case env.IsDevelopment():
		return func(assetPath string) string {
			return view.DefaultDevOrigin + "/" + path.Join(assetsBase, strings.TrimPrefix(assetPath, "/"))
		}
	}

	if filesys == nil {
		filesys = os.DirFS(".")
	}

	var resolved sync.Map
	return func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		if uri, ok := resolved.Load(assetPath); ok {
			return uri.(string)
		}

		uri := "/" + hashedAsset(filesys, assetPath)
		resolved.Store(assetPath, uri)
		return uri
	}
}

// hashedAsset finds the hashed build output for assetPath,
// e.g. client/dist/assets/favicon-af8s7f9.ico for assets/favicon.ico.
func hashedAsset(filesys fs.FS, assetPath string) string {
	ext := path.Ext(assetPath)
	glob := path.Join(assetsBase, strings.TrimSuffix(assetPath, ext)+"-*"+ext)

	matches, err := fs.Glob(filesys, glob)
	if err != nil || len(matches) == 0 {
		return path.Join(assetsBase, assetPath)
	}

	return matches[0]
}
