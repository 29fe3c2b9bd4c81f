package template

import (
	html "html/template"
	"io/fs"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/cryptodash"
)

// Names of the functions available to dashboard templates.
const (
	FnAssetURI      = "assetURI"
	FnEnv           = "env"
	FnIsDevelopment = "isDevelopment"
	FnIsProduction  = "isProduction"
	FnNonce         = "nonce"
	FnPackTag       = "packTag"
	FnRootURL       = "rootUrl"
	FnTitle         = "title"
)

// AddFn includes the named function in the Parse function map.
// An empty name is ignored.
func (p *Parse) AddFn(name string, fn any) {
	if name == "" {
		return
	}

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// AddFuncs includes every function in fns, replacing any of the same name.
func (p *Parse) AddFuncs(fns html.FuncMap) {
	for name, fn := range fns {
		p.AddFn(name, fn)
	}
}

// A Site describes the running dashboard to its templates.
type Site struct {
	Env     cryptodash.Environment
	RootURL *url.URL

	// Assets holds the client's build output under client/dist.
	Assets fs.FS

	// Title names the app in page titles.
	Title string
}

// Funcs returns every function a dashboard template may call.
func (s Site) Funcs() html.FuncMap {
	title := s.Title
	env := s.Env

	return html.FuncMap{
		FnAssetURI:      AssetURI(env, s.Assets),
		FnEnv:           env.String,
		FnIsDevelopment: env.IsDevelopment,
		FnIsProduction:  env.IsProduction,
		FnNonce:         Nonce,
		FnPackTag:       TagPacker(env, s.Assets),
		FnRootURL:       RootURL(s.RootURL),
		FnTitle:         func() string { return title },
	}
}

// Nonce generates a fresh value for a script's nonce attribute.
func Nonce() string { return uuid.NewString() }

// RootURL returns a function emitting u.
// If u is nil, that function always returns an empty string.
func RootURL(u *url.URL) func() string {
	var s string
	if u != nil {
		s = u.String()
	}

	return func() string { return s }
}
