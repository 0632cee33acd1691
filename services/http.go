package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/almaqal-media/almaqal_api/services/handlers"
	"github.com/almaqal-media/almaqal_api/shared"
)

type HttpService struct {
	context.DefaultService

	adsSvc        *AdsService
	contentSvc    *ContentService
	toolsSvc      *ToolsService
	newsletterSvc *NewsletterService
	authSvc       *AuthService
	mediaSvc      *MediaService
	seoSvc        *SEOService
	rateLimitSvc  *RateLimitService
	securitySvc   *SecurityService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.adsSvc = svc.Service(ADS_SVC).(*AdsService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.toolsSvc = svc.Service(TOOLS_SVC).(*ToolsService)
	svc.newsletterSvc = svc.Service(NEWSLETTER_SVC).(*NewsletterService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.seoSvc = svc.Service(SEO_SVC).(*SEOService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.securitySvc = svc.Service(SECURITY_SVC).(*SecurityService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())

	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(MonitoringMiddleware())

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", "page not found")
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	adHandler := handlers.NewAdHandler(svc.adsSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	toolHandler := handlers.NewToolHandler(svc.toolsSvc)
	newsletterHandler := handlers.NewNewsletterHandler(svc.newsletterSvc)
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)
	seoHandler := handlers.NewSEOHandler(svc.seoSvc)

	app.Get("/ping", svc.ping)
	app.Get("/sitemap.xml", seoHandler.Sitemap)
	app.Get("/rss.xml", seoHandler.RSSFeed)
	app.Get("/robots.txt", seoHandler.Robots)

	v1 := app.Group("/api/v1", svc.rateLimitSvc.IPRateLimit())

	v1.Get("/ping", svc.ping)

	// Public content
	v1.Get("/articles", contentHandler.ListArticles)
	v1.Get("/articles/:slug", contentHandler.GetArticle)
	v1.Get("/categories", contentHandler.ListCategories)
	v1.Get("/tools", toolHandler.ListTools)
	v1.Get("/tools/:slug", toolHandler.GetTool)

	// Ad delivery and management. Writes need an editor token; reads and
	// click recording are public.
	requireEditor := []fiber.Handler{
		svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleEditor),
	}

	ads := v1.Group("/ads")
	ads.Get("/serve", adHandler.ServeAds)
	ads.Get("/", adHandler.ListAds)
	ads.Post("/", append(requireEditor, adHandler.CreateAd)...)
	ads.Post("/:id/click",
		svc.securitySvc.Filter(false),
		svc.rateLimitSvc.RateLimit("ad_click"),
		adHandler.RecordClick)
	ads.Get("/:id", adHandler.GetAd)
	ads.Patch("/:id", append(requireEditor, adHandler.UpdateAd)...)
	ads.Delete("/:id", append(requireEditor, adHandler.DeleteAd)...)

	// Newsletter
	v1.Post("/newsletter/subscribe",
		svc.securitySvc.Filter(true),
		svc.rateLimitSvc.RateLimit("newsletter_subscribe"),
		newsletterHandler.Subscribe)

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/login",
		svc.rateLimitSvc.RateLimit("admin_login"),
		authHandler.Login)
	auth.Get("/me", svc.authSvc.RequiredAuth(), authHandler.Me)

	// Admin
	admin := v1.Group("/admin",
		svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleEditor))

	admin.Post("/articles", contentHandler.CreateArticle)
	admin.Patch("/articles/:id", contentHandler.UpdateArticle)
	admin.Delete("/articles/:id", contentHandler.DeleteArticle)

	admin.Post("/tools", toolHandler.CreateTool)
	admin.Patch("/tools/:id", toolHandler.UpdateTool)
	admin.Delete("/tools/:id", toolHandler.DeleteTool)

	admin.Get("/newsletter/count", newsletterHandler.SubscriberCount)

	admin.Post("/media/:folder", mediaHandler.Upload)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled request error")
	return shared.ResponseInternalError(c)
}
