// Package dashboard serves a small read-only web view over the record
// store: campaign totals, acceptance rate, and daily log counts.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/metrics"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>LinkedBot Dashboard</title></head>
<body>
<h1>LinkedBot</h1>
<p>Campaign metrics are served as JSON from <a href="/api/metrics">/api/metrics</a>.</p>
</body>
</html>`

// Router builds the gin engine with all dashboard routes.
func Router(st *store.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Collect(st))
	})

	return r
}

// Serve runs the dashboard on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, st *store.Store, log *logging.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: Router(st),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("dashboard listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
