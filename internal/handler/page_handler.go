package handler

import "net/http"

// PageHandler は固定ページのHTTPハンドラー。
type PageHandler struct {
	*page
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(p *page) *PageHandler {
	return &PageHandler{page: p}
}

// About はAboutページを表示する。
// GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about", h.data(w, r))
}

// Contact はContactページを表示する。
// GET /contact
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact", h.data(w, r))
}
