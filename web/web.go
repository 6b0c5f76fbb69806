// Package web はサーバーに埋め込むテンプレートと静的アセットを提供します。
// ファイルシステムに依存しないため、バイナリ単体でどこからでも起動できます。
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates は全ページテンプレートをパースして返します。
// パース失敗は起動時のパニックで検出します。
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// Static は /static 配下で配信するファイルシステムを返します。
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
