// Package proxy forwards the site's /api/* calls to the restaurant backend
// so the browser only ever talks to one origin.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Prefix is the path the proxy is mounted under. It is stripped before
// the request is forwarded.
const Prefix = "/api"

// New builds a reverse proxy to target. /api/products becomes
// target/products.
func New(target string, log logrus.FieldLogger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.Wrapf(err, "proxy: parse %q", target)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("proxy: %q is not an absolute url", target)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(u)
			r.SetXForwarded()
			r.Out.URL.Path = singleJoin(u.Path, strings.TrimPrefix(r.In.URL.Path, Prefix))
			r.Out.URL.RawPath = ""
			// The session cookie belongs to this service, not the backend.
			r.Out.Header.Del("Cookie")
		},
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.WithError(err).WithField("http.req.path", r.URL.Path).Warn("api proxy failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error":"Backend unavailable"}`))
		},
	}, nil
}

// Handler mounts p on a gin route such as /api/*path.
func Handler(p *httputil.ReverseProxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.ServeHTTP(c.Writer, c.Request)
	}
}

func singleJoin(a, b string) string {
	a = strings.TrimRight(a, "/")
	b = strings.TrimLeft(b, "/")
	return a + "/" + b
}
