package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/romusmm/my-gift-box/internal/handlers"
	mw "github.com/romusmm/my-gift-box/internal/middleware"
	"github.com/romusmm/my-gift-box/internal/observability"
)

// pageData builds the full view model for the session.
func (a *app) pageData(r *http.Request, sd *mw.SessionData) handlers.PageData {
	now := a.now()
	data := a.site.Build(sd.View, now)
	data.CSRFToken = mw.CSRFToken(r)
	data.Confetti = a.confetti(r, sd, now)
	return data
}

func (a *app) confetti(r *http.Request, sd *mw.SessionData, now time.Time) handlers.ConfettiView {
	v := handlers.BuildConfetti(sd.Pending, now)
	v.CSRFToken = mw.CSRFToken(r)
	return v
}

// render writes a named fragment, or the full layout when name is empty.
func (a *app) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var err error
	if name == "" {
		err = a.renderer.Page(w, http.StatusOK, data)
	} else {
		err = a.renderer.Fragment(w, http.StatusOK, name, data)
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("render failed", zap.String("template", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render error")
	}
}

// respondApp swaps #app for htmx and redirects plain form posts home.
func (a *app) respondApp(w http.ResponseWriter, r *http.Request, sd *mw.SessionData) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.render(w, r, "frag_app", a.pageData(r, sd))
}
