package legacy

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The legacy REST layer predates the Firestore-backed controllers and is
// kept for basic user auth and the operators table. Requests are proxied to
// the old backend with its static API key; auth rides on the session cookie.
const legacyTimeout = 15 * time.Second

type Proxy struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewProxy() *Proxy {
	return &Proxy{
		baseURL: strings.TrimRight(os.Getenv("LEGACY_API_URL"), "/"),
		apiKey:  os.Getenv("LEGACY_API_KEY"),
		client:  &http.Client{},
	}
}

func LegacyController(router *gin.Engine, proxy *Proxy) {
	api := router.Group("/api")
	{
		api.POST("/register", proxy.Forward)
		api.POST("/login", proxy.Forward)
		api.POST("/logout", proxy.Forward)
		api.GET("/user", proxy.Forward)

		api.GET("/operators", proxy.Forward)
		api.POST("/operators", proxy.Forward)
		api.GET("/operators/:id", proxy.Forward)
		api.PUT("/operators/:id", proxy.Forward)
		api.DELETE("/operators/:id", proxy.Forward)
	}
}

// Forward relays the request as-is and copies the upstream answer back.
// The 15-second deadline aborts slow upstream calls client-side.
func (p *Proxy) Forward(c *gin.Context) {
	if p.baseURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Legacy API is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), legacyTimeout)
	defer cancel()

	url := p.baseURL + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		url += "?" + c.Request.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, c.Request.Method, url, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build upstream request"})
		return
	}
	req.Header.Set("apikey", p.apiKey)
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	for _, cookie := range c.Request.Cookies() {
		req.AddCookie(cookie)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Legacy API timed out"})
			return
		}
		zap.L().Error("legacy proxy", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Legacy API unreachable"})
		return
	}
	defer resp.Body.Close()

	for _, sc := range resp.Header.Values("Set-Cookie") {
		c.Writer.Header().Add("Set-Cookie", sc)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}
