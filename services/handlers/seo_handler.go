package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type SEOHandler struct {
	seoSvc SEOServiceInterface
}

func NewSEOHandler(seoSvc SEOServiceInterface) *SEOHandler {
	return &SEOHandler{
		seoSvc: seoSvc,
	}
}

// @Summary Sitemap
// @Description XML sitemap of published articles and tools
// @Tags seo
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func (h *SEOHandler) Sitemap(c *fiber.Ctx) error {
	body, err := h.seoSvc.Sitemap()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(body)
}

// @Summary RSS Feed
// @Description RSS 2.0 feed of recent articles
// @Tags seo
// @Produce xml
// @Success 200 {string} string "rss feed"
// @Router /rss.xml [get]
func (h *SEOHandler) RSSFeed(c *fiber.Ctx) error {
	body, err := h.seoSvc.RSSFeed()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.Send(body)
}

// @Summary Robots
// @Description robots.txt pointing crawlers at the sitemap
// @Tags seo
// @Produce plain
// @Success 200 {string} string "robots.txt"
// @Router /robots.txt [get]
func (h *SEOHandler) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Send(h.seoSvc.RobotsTxt())
}
