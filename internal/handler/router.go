package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/middleware"
	"github.com/noah-isme/edupay-api/internal/service"
	"github.com/noah-isme/edupay-api/pkg/config"
	"github.com/noah-isme/edupay-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edupay-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edupay-api/pkg/middleware/requestid"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Payments *PaymentHandler
	Contacts *ContactHandler
	Contents *ContentHandler
	Users    *UserHandler
	Auth     *AuthHandler
	Exports  *ExportHandler
	Mirrors  *MirrorHandler
}

// NewRouter builds the gin engine with the full route table and the
// ambient middleware chain.
func NewRouter(cfg *config.Config, logr *zap.Logger, h Handlers, authService *service.AuthService, metricsSvc *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	started := time.Now()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	// Payment pipeline endpoints keep the paths the checkout frontend
	// already calls, outside the /api prefix.
	r.POST("/create-order", h.Payments.CreateOrder)
	r.POST("/verify-payment", h.Payments.Verify)
	r.POST("/submit-contact", h.Contacts.SubmitContact)
	r.POST("/submit-about-inquiry", h.Contacts.SubmitAbout)

	api := r.Group("/api")
	{
		api.GET("/students", h.Payments.ListStudents)
		api.GET("/contact-messages", h.Contacts.ListContacts)
		api.GET("/about-inquiries", h.Contacts.ListAbouts)
		api.GET("/users", h.Users.List)
		api.GET("/download/:file", h.Mirrors.Download)

		lms := api.Group("/lms")
		{
			lms.GET("/content", h.Contents.List)
			lms.POST("/content", h.Contents.Register)
			lms.POST("/upload", h.Contents.Upload)
			lms.DELETE("/content/:id", h.Contents.Delete)
		}

		api.POST("/auth/login", h.Auth.Login)

		admin := api.Group("/export")
		admin.Use(middleware.JWT(authService))
		{
			admin.GET("/:entity", h.Exports.Download)
		}
	}

	return r
}
