package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flyflex/api"
	"github.com/Domenick1991/flyflex/config"
	"github.com/Domenick1991/flyflex/internal/service/booking"
	"github.com/Domenick1991/flyflex/internal/service/bookingquery"
	"github.com/Domenick1991/flyflex/internal/service/search"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, searchSvc search.SearchUseCase, bookingSvc booking.BookingUseCase, querySvc bookingquery.QueryUseCase) error {
	router := newRouter(cfg, searchSvc, bookingSvc, querySvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, searchSvc search.SearchUseCase, bookingSvc booking.BookingUseCase, querySvc bookingquery.QueryUseCase) *gin.Engine {
	router := gin.Default()
	router.Use(api.Identity())

	api.NewSearchHandler(searchSvc).Register(router.Group("/search"))
	api.NewBookingHandler(bookingSvc, querySvc).Register(router.Group("/bookings"))
	api.NewAdminHandler(bookingSvc, querySvc).Register(router.Group("/admin"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
