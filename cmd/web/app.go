package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/romusmm/my-gift-box/content"
	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/cms"
	"github.com/romusmm/my-gift-box/internal/config"
	"github.com/romusmm/my-gift-box/internal/handlers"
	"github.com/romusmm/my-gift-box/internal/message"
	mw "github.com/romusmm/my-gift-box/internal/middleware"
	"github.com/romusmm/my-gift-box/internal/render"
	"github.com/romusmm/my-gift-box/internal/sequencer"
	"github.com/romusmm/my-gift-box/public"
	"github.com/romusmm/my-gift-box/templates"
)

// app wires the site's collaborators. Handlers hang off it.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	catalog   *catalog.Store
	site      handlers.Site
	formatter message.Formatter
	links     message.LinkBuilder
	renderer  *render.Renderer
	targets   sequencer.TargetStore
	assets    fs.FS
	now       func() time.Time
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	store := catalog.Default()

	lib, err := cms.Load(content.FS, map[string]string{
		"brand":     cfg.Brand.Name,
		"instagram": cfg.Brand.Instagram,
	})
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	logger.Debug("content loaded", zap.Strings("slugs", lib.Slugs()))

	var renderer *render.Renderer
	if cfg.Templates.Dir != "" && !cfg.IsProduction() {
		renderer, err = render.NewDev(ctx, cfg.Templates.Dir, templateFuncs(), render.WithLogger(logger.Named("templates")))
	} else {
		renderer, err = render.New(templates.FS, templateFuncs())
	}
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range requiredTemplates {
		if !renderer.Has(name) {
			return nil, fmt.Errorf("parse templates: %q is not defined", name)
		}
	}

	assets, err := public.AssetsFS()
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		catalog: store,
		site: handlers.Site{
			Brand:     cfg.Brand.Name,
			Instagram: cfg.Brand.Instagram,
			SiteURL:   cfg.SiteURL,
			Currency:  cfg.Brand.Currency,
			Catalog:   store,
			Content:   lib,
			Analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
		},
		formatter: message.Formatter{Brand: cfg.Brand.Name},
		links:     message.LinkBuilder{BaseURL: cfg.WhatsApp.BaseURL, Recipient: cfg.WhatsApp.Number},
		renderer:  renderer,
		targets:   sequencer.NewMemoryStore(),
		assets:    assets,
		now:       time.Now,
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Trace)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(a.assets)))

	production := a.cfg.IsProduction()
	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session(mw.SessionOptions{
			SigningKey: a.cfg.Session.SigningKey,
			Secure:     production,
			Logger:     a.logger.Named("session"),
			Targets:    a.targets,
		}))
		r.Use(mw.CSRF(mw.CSRFOptions{Secure: production}))

		r.Get("/", a.homeHandler)
		r.Post("/nav", a.navHandler)
		r.Post("/nav/menu", a.menuHandler)
		r.Post("/actions/purchase", a.purchaseHandler)
		r.Post("/actions/contact", a.contactHandler)
		r.Post("/actions/order", a.orderHandler)
		r.Post("/actions/complete", a.completeHandler)
		r.Post("/fragments/remaining", a.remainingHandler)
	})
	return r
}

// requiredTemplates are rendered by name from the handlers.
var requiredTemplates = []string{"base", "frag_app", "frag_confetti", "frag_order", "frag_remaining"}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
	}
}
