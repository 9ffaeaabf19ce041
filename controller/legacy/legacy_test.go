package legacy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardRelaysRequestAndResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotKey, gotBody, gotCookie string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "rotated"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"op1"}`))
	}))
	defer upstream.Close()

	proxy := &Proxy{baseURL: upstream.URL, apiKey: "static-key", client: upstream.Client()}
	router := gin.New()
	LegacyController(router, proxy)

	req := httptest.NewRequest(http.MethodPost, "/api/operators", strings.NewReader(`{"name":"Amil"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc123"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "static-key", gotKey)
	assert.Equal(t, `{"name":"Amil"}`, gotBody)
	assert.Equal(t, "abc123", gotCookie)
	assert.JSONEq(t, `{"id":"op1"}`, w.Body.String())

	setCookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	assert.Contains(t, setCookie, "session=rotated")
}

func TestForwardUpstreamStatusPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer upstream.Close()

	proxy := &Proxy{baseURL: upstream.URL, apiKey: "static-key", client: upstream.Client()}
	router := gin.New()
	LegacyController(router, proxy)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "bad credentials")
}

func TestForwardUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	LegacyController(router, &Proxy{client: http.DefaultClient})

	req := httptest.NewRequest(http.MethodGet, "/api/operators", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
