package web

import (
	"context"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/QuantumGhost/folio/internal/metrics"
	"github.com/QuantumGhost/folio/internal/render"
	"github.com/QuantumGhost/folio/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Setup builds the router for config. The returned function releases the
// resources the router holds.
func Setup(ctx context.Context, config internal.Config) (*chi.Mux, func(), error) {
	site, err := internal.LoadSite(config.SiteConfigPath)
	if err != nil {
		return nil, nil, err
	}
	origin, err := content.NewOrigin(ctx, config.ContentOrigin)
	if err != nil {
		return nil, nil, err
	}
	collector := metrics.NewCollector("folio")
	prefs := i18n.NewCookieStore()
	prefs.Secure = config.SecureCookies

	opts := Options{
		Site:        site,
		Content:     content.NewFetcher(origin, collector),
		Renderer:    render.New(render.WithCodeStyle(site.CodeStyle)),
		Preferences: prefs,
		Metrics:     collector,
	}
	cleanup := func() {}
	if config.SearchEnabled() {
		searcher, err := search.NewSearcher(ctx, config.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		opts.Searcher = searcher
		cleanup = func() {
			if err := searcher.Close(); err != nil {
				log.Warn().Err(err).Msg("error while closing search database")
			}
		}
	}
	server, err := NewServer(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	log.Info().
		Str("origin", origin.Kind()).
		Bool("search", config.SearchEnabled()).
		Str("author", site.Author).
		Msg("router ready")
	return server.Router(), cleanup, nil
}
