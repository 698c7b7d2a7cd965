package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DeejuSivadas/Malayalam-News/internal/cache"
)

// Version is reported in every API payload.
const Version = "3.0.0"

type Server struct {
	gate           *cache.Gate
	requestTimeout time.Duration
}

func NewServer(gate *cache.Gate, requestTimeout time.Duration) *Server {
	return &Server{gate: gate, requestTimeout: requestTimeout}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/api/headlines", s.headlines)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// headlines serves the cached aggregate. force=1 bypasses the TTL, debug=1
// adds per-source stats. When the pass overruns the outer request bound the
// caller gets a 504 while the pass keeps running in the background and
// populates the cache for the next request.
func (s *Server) headlines(c *gin.Context) {
	force := c.Query("force") == "1"
	debug := c.Query("debug") == "1"

	type outcome struct {
		entry  *cache.Entry
		cached bool
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		entry, cached, err := s.gate.Get(force)
		done <- outcome{entry: entry, cached: cached, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"version": Version,
				"error":   "aggregation_failed",
				"message": o.err.Error(),
			})
			return
		}
		resp := gin.H{
			"version":   Version,
			"updatedAt": o.entry.FetchedAt.UnixMilli(),
			"items":     o.entry.Items,
			"cached":    o.cached,
		}
		if debug {
			resp["stats"] = o.entry.Stats
		}
		c.JSON(http.StatusOK, resp)
	case <-time.After(s.requestTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"version": Version,
			"error":   "timeout",
			"message": "aggregation did not finish in time, try again shortly",
		})
	}
}
