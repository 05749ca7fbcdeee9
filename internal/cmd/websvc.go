package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/webshield/webshield"
	"github.com/webshield/webshield/rules"
)

// webSvcConfig is the configuration of the debug HTTP API.
type webSvcConfig struct {
	logger *slog.Logger
	engine *webshield.Engine
	addr   string
}

// webSvc is the debug HTTP API of the filtering service.  It exposes the
// prometheus metrics and an endpoint for ad-hoc filtering queries.
type webSvc struct {
	logger *slog.Logger
	engine *webshield.Engine
	srv    *http.Server
}

// newWebSvc returns a new web service.  c must not be nil.
func newWebSvc(c *webSvcConfig) (svc *webSvc) {
	svc = &webSvc{
		logger: c.logger,
		engine: c.engine,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/check", svc.handleCheck)
	mux.HandleFunc("/cosmetic", svc.handleCosmetic)

	svc.srv = &http.Server{
		Addr:              c.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return svc
}

// Start makes the service listen on its address and serve in a goroutine.
func (svc *webSvc) Start(ctx context.Context) (err error) {
	l, err := net.Listen("tcp", svc.srv.Addr)
	if err != nil {
		return fmt.Errorf("starting web service: %w", err)
	}

	svc.logger.InfoContext(ctx, "listening", "addr", svc.srv.Addr)

	go func() {
		srvErr := svc.srv.Serve(l)
		if srvErr != nil && srvErr != http.ErrServerClosed {
			svc.logger.Error("serving", "err", srvErr)
		}
	}()

	return nil
}

// Shutdown stops the service gracefully.
func (svc *webSvc) Shutdown(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return svc.srv.Shutdown(ctx)
}

// checkResponse is the JSON body of a "/check" response.
type checkResponse struct {
	URL          string   `json:"url"`
	Redirect     string   `json:"redirect,omitempty"`
	RemoveParams []string `json:"remove_params,omitempty"`
	Blocked      bool     `json:"blocked"`
}

// handleCheck answers an ad-hoc filtering query.  Query parameters:  "url"
// (required), "origin", and "type" (a request type name, defaulting to
// "other").
func (svc *webSvc) handleCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawURL := q.Get("url")
	if rawURL == "" {
		http.Error(w, "no url", http.StatusBadRequest)

		return
	}

	origin := q.Get("origin")
	typ := rules.RequestTypeFromString(q.Get("type"))

	resp := &checkResponse{
		URL:          rawURL,
		Blocked:      svc.engine.IsFiltered(rawURL, origin, typ),
		RemoveParams: svc.engine.RemoveParamsFor(rawURL, origin, typ),
	}

	if res, ok := svc.engine.RedirectResourceFor(rawURL, origin, typ); ok {
		resp.Redirect = res
	}

	writeJSON(w, svc.logger, resp)
}

// cosmeticResponse is the JSON body of a "/cosmetic" response.
type cosmeticResponse struct {
	Domain    string   `json:"domain"`
	Selectors []string `json:"selectors"`
}

// handleCosmetic returns the hiding selectors for a domain.  Query
// parameter:  "domain" (required).
func (svc *webSvc) handleCosmetic(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		http.Error(w, "no domain", http.StatusBadRequest)

		return
	}

	writeJSON(w, svc.logger, &cosmeticResponse{
		Domain:    domain,
		Selectors: svc.engine.CosmeticSelectorsFor(domain),
	})
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, l *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		l.Error("writing response", "err", err)
	}
}
