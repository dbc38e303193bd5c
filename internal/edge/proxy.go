package edge

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/dmitrymomot/hireflow/middlewares"
	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/i18n"
)

// statusClientClosedRequest answers proxied requests the browser abandoned.
const statusClientClosedRequest = 499

// newBackendProxy forwards /api traffic to the backend on the same origin as
// the pages, so the browser never needs CORS for API calls.
func newBackendProxy(target *url.URL, transport http.RoundTripper, catalogue *i18n.I18n, log *slog.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			// Tenant and request ID headers were set on the inbound request by
			// the middlewares and are copied by ReverseProxy.
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, context.Canceled) {
				w.WriteHeader(statusClientClosedRequest)
				return
			}

			log.ErrorContext(r.Context(), "backend unreachable",
				slog.String("path", r.URL.Path),
				slog.Any("error", err))

			tr, terr := apierr.NewTranslator(
				apierr.WithCatalogue(catalogue),
				apierr.WithLanguage(middlewares.GetLanguage(r.Context())),
			)
			if terr != nil {
				http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
				return
			}
			e := tr.Network(err)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"detail": e.Message,
				"code":   e.Code,
			})
		},
	}
}

// newFrontendProxy forwards page requests to a running frontend server.
func newFrontendProxy(target *url.URL, transport http.RoundTripper) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = pr.In.Host
		},
	}
}

// spaHandler serves files from dir and falls back to index.html for client
// side routes.
func spaHandler(dir string) http.Handler {
	fsys := os.DirFS(dir)
	files := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		if info, err := fs.Stat(fsys, name); err == nil && (!info.IsDir() || name == ".") {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFileFS(w, r, fsys, "index.html")
	})
}
