package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DarshanCode2005/gitmesh/internal/middleware"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.internalKey, webhook.NewRateLimiter(srv.rateLimitPerMin))

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	return srv.registerDomainRoutes(mw)
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())
	srv.gin.Use(mw.Logger())

	srv.l.Infof(context.Background(), "HTTP middlewares registered: environment=%s", srv.environment)
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()

	if err := srv.setupWebhookDomain(ctx, mw); err != nil {
		return err
	}

	if srv.hub != nil {
		srv.gin.GET("/webhook/devtel/feed", mw.InternalAuth(), srv.hub.Serve)
		srv.l.Infof(ctx, "Live feed registered at GET /webhook/devtel/feed")
	} else {
		srv.l.Infof(ctx, "Live feed not configured, skipping feed route")
	}

	return nil
}
