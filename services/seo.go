package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/almaqal-media/almaqal_api/services/repositories"

	appContext "github.com/alphabatem/common/context"
)

// SEOService renders the sitemap, RSS feed and robots.txt from the published
// catalog. Feeds are rebuilt on demand and cached briefly in Redis since
// crawlers hit them in bursts.
type SEOService struct {
	appContext.DefaultService

	sqlSvc *PostgresService
	cache  *RedisService

	siteURL      string
	siteName     string
	cacheTTL     time.Duration
	storeTimeout time.Duration
}

const SEO_SVC = "seo_svc"

func (svc SEOService) Id() string {
	return SEO_SVC
}

func (svc *SEOService) Configure(ctx *appContext.Context) error {
	svc.siteURL = strings.TrimRight(os.Getenv("SITE_URL"), "/")
	if svc.siteURL == "" {
		svc.siteURL = "https://almaqal.net"
	}

	svc.siteName = os.Getenv("SITE_NAME")
	if svc.siteName == "" {
		svc.siteName = "المقال"
	}

	svc.cacheTTL = 10 * time.Minute
	svc.storeTimeout = 5 * time.Second

	return svc.DefaultService.Configure(ctx)
}

func (svc *SEOService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== SITEMAP ====================

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (svc *SEOService) Sitemap() ([]byte, error) {
	if cached, err := svc.cache.Get(context.Background(), "seo:sitemap"); err == nil && cached != "" {
		return []byte(cached), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	articles, _, err := svc.sqlSvc.Articles().List(ctx, repositories.ArticleFilters{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	tools, err := svc.sqlSvc.Tools().List(ctx, repositories.ToolFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	urlSet := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: svc.siteURL + "/", ChangeFreq: "daily", Priority: "1.0"},
			{Loc: svc.siteURL + "/tools", ChangeFreq: "weekly", Priority: "0.8"},
		},
	}

	for _, article := range articles {
		entry := sitemapURL{
			Loc:        fmt.Sprintf("%s/articles/%s", svc.siteURL, article.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		}
		if article.PublishedAt != nil {
			entry.LastMod = article.PublishedAt.UTC().Format("2006-01-02")
		}
		urlSet.URLs = append(urlSet.URLs, entry)
	}

	for _, tool := range tools {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/tools/%s", svc.siteURL, tool.Slug),
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	body, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		return nil, err
	}

	out := append([]byte(xml.Header), body...)
	_ = svc.cache.Set(context.Background(), "seo:sitemap", string(out), svc.cacheTTL)
	return out, nil
}

// ==================== RSS ====================

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
}

func (svc *SEOService) RSSFeed() ([]byte, error) {
	if cached, err := svc.cache.Get(context.Background(), "seo:rss"); err == nil && cached != "" {
		return []byte(cached), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	articles, _, err := svc.sqlSvc.Articles().List(ctx, repositories.ArticleFilters{
		PublishedOnly: true,
		Page:          1,
		Limit:         50,
	})
	if err != nil {
		return nil, err
	}

	channel := rssChannel{
		Title:       svc.siteName,
		Link:        svc.siteURL,
		Description: svc.siteName,
		Language:    "ar",
	}

	for _, article := range articles {
		item := rssItem{
			Title:       article.Title,
			Link:        fmt.Sprintf("%s/articles/%s", svc.siteURL, article.Slug),
			Description: article.Excerpt,
			GUID:        fmt.Sprintf("%s/articles/%s", svc.siteURL, article.Slug),
		}
		if article.PublishedAt != nil {
			item.PubDate = article.PublishedAt.UTC().Format(time.RFC1123Z)
		}
		channel.Items = append(channel.Items, item)
	}

	body, err := xml.MarshalIndent(rssFeed{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, err
	}

	out := append([]byte(xml.Header), body...)
	_ = svc.cache.Set(context.Background(), "seo:rss", string(out), svc.cacheTTL)
	return out, nil
}

// ==================== ROBOTS ====================

func (svc *SEOService) RobotsTxt() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /admin/\n\n")
	b.WriteString("Sitemap: " + svc.siteURL + "/sitemap.xml\n")
	return []byte(b.String())
}
