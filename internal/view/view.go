// Package view はHTMLテンプレートのレンダリングと画面表示の補助機能を提供する。
// テンプレートはバイナリに埋め込まれ、layout.htmlと各ページを組にしてパースする。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer はページ名からテンプレートを引いてレンダリングする。
type Renderer struct {
	tmpl map[string]*template.Template
}

// NewRenderer は埋め込みテンプレートをパースしてRendererを生成する。
// layout.html以外の各ページをlayout.htmlと組にしてパースし、
// ページ名（拡張子なしのファイル名）で登録する。
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		// サニタイズ済みリッチテキストをエスケープせずに出力する。
		// security.ContentSanitizerを通過した本文にのみ使用すること。
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"gravatar": GravatarURL,
	}

	pages, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	tmpl := map[string]*template.Template{}
	for _, page := range pages {
		if page.Name() == "layout.html" {
			continue
		}
		t, err := template.New(page.Name()).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			path.Join("templates", page.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page.Name(), err)
		}
		name := strings.TrimSuffix(page.Name(), ".html")
		tmpl[name] = t
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render は指定ページをlayoutに埋め込んでレンダリングする。
// レンダリング失敗時は500を返す。statusには通常http.StatusOKを渡す。
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data map[string]any) {
	t, ok := r.tmpl[name]
	if !ok {
		slog.Error("template not found", slog.String("name", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}
