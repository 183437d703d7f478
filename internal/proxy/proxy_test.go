package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRouter(t *testing.T, target string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p, err := New(target, quietLog())
	require.NoError(t, err)

	r := gin.New()
	r.Any(Prefix+"/*path", Handler(p))
	return r
}

func TestProxy_ForwardsAndStripsPrefix(t *testing.T) {
	var gotPath, gotQuery, gotCookie, gotForwarded string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCookie = r.Header.Get("Cookie")
		gotForwarded = r.Header.Get("X-Forwarded-For")
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "hello")
	}))
	defer backend.Close()

	r := newRouter(t, backend.URL+"/v2")

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=3", nil)
	req.Header.Set("Cookie", "shop_session-id=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Equal(t, "/v2/products", gotPath)
	assert.Equal(t, "limit=3", gotQuery)
	assert.Empty(t, gotCookie)
	assert.NotEmpty(t, gotForwarded)
}

func TestProxy_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	r := newRouter(t, url)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Backend unavailable"}`, w.Body.String())
}

func TestNew_RejectsRelativeTarget(t *testing.T) {
	_, err := New("backend:8080/api", quietLog())
	assert.Error(t, err)

	_, err = New("/only/a/path", quietLog())
	assert.Error(t, err)
}
