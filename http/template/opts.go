package template

import (
	html "html/template"
	"io/fs"
)

// The ParserOptFn applies functional options to a *Parse when constructing it.
type ParserOptFn func(*Parse)

// WithFuncs adds fns to the functions templates may call.
func WithFuncs(fns html.FuncMap) ParserOptFn {
	return func(p *Parse) {
		p.AddFuncs(fns)
	}
}

// WithFS sets the filesystem templates are looked up in before those embedded in this package.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) {
		p.fs = filesys
	}
}
