package handlers

import (
	"io"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
)

type AdsServiceInterface interface {
	ServeAds(req dto.ServeAdsRequest, clientIP, userAgent string) *dto.AdListResponse
	RecordClick(adID, placement, clientIP, userAgent, referer string)
	ListAds(req dto.ListAdsRequest) (*dto.AdListResponse, error)
	GetAd(id string) (*model.Ad, error)
	CreateAd(req dto.CreateAdRequest) (*model.Ad, error)
	UpdateAd(id string, req dto.UpdateAdRequest) (*model.Ad, error)
	DeleteAd(id string) error
}

type ContentServiceInterface interface {
	ListArticles(req dto.ListArticlesRequest) (*dto.ArticleListResponse, error)
	GetArticle(slug string) (*model.Article, error)
	ListCategories() ([]model.Category, error)
	CreateArticle(authorID string, req dto.CreateArticleRequest) (*model.Article, error)
	UpdateArticle(id string, req dto.UpdateArticleRequest) (*model.Article, error)
	DeleteArticle(id string) error
}

type ToolsServiceInterface interface {
	ListTools(req dto.ListToolsRequest) (*dto.ToolListResponse, error)
	GetTool(slug string) (*model.AITool, error)
	CreateTool(req dto.CreateToolRequest) (*model.AITool, error)
	UpdateTool(id string, req dto.UpdateToolRequest) (*model.AITool, error)
	DeleteTool(id string) error
}

type NewsletterServiceInterface interface {
	Subscribe(req dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	SubscriberCount() (int64, error)
}

type AuthServiceInterface interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(userID string) (*dto.MeResponse, error)
}

type MediaServiceInterface interface {
	UploadCreative(folder string, reader io.Reader, size int64, contentType string) (string, error)
}

type SEOServiceInterface interface {
	Sitemap() ([]byte, error)
	RSSFeed() ([]byte, error)
	RobotsTxt() []byte
}
