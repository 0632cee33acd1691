package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/services/repositories"
	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ContentService struct {
	appContext.DefaultService

	sqlSvc *PostgresService

	storeTimeout time.Duration
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	svc.storeTimeout = 5 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== PUBLIC READS ====================

func (svc *ContentService) ListArticles(req dto.ListArticlesRequest) (*dto.ArticleListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	articles, total, err := svc.sqlSvc.Articles().List(ctx, repositories.ArticleFilters{
		Category:      req.Category,
		Language:      req.Language,
		PublishedOnly: true,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ArticleListResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// GetArticle fetches a published article by slug and bumps its view counter.
// The counter update is best-effort; a failed increment never hides the
// article.
func (svc *ContentService) GetArticle(slug string) (*model.Article, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	article, err := svc.sqlSvc.Articles().GetBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Article not found")
	}

	if !article.Published {
		return nil, shared.NewNotFoundError(fmt.Errorf("article %s not published", slug), "Article not found")
	}

	go func() {
		viewCtx, viewCancel := context.WithTimeout(context.Background(), svc.storeTimeout)
		defer viewCancel()
		if err := svc.sqlSvc.Articles().IncrementViewCount(viewCtx, article.ID); err != nil {
			log.WithError(err).WithField("article_id", article.ID).Warn("Failed to increment article views")
		}
	}()

	return article, nil
}

func (svc *ContentService) ListCategories() ([]model.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	return svc.sqlSvc.Articles().ListCategories(ctx)
}

// ==================== ADMIN WRITES ====================

func (svc *ContentService) CreateArticle(authorID string, req dto.CreateArticleRequest) (*model.Article, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	exists, err := svc.sqlSvc.Articles().SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
	}

	language := req.Language
	if language == "" {
		language = shared.LanguageArabic
	}

	now := time.Now()
	article := &model.Article{
		ID:         uuid.NewString(),
		Slug:       slug,
		Title:      req.Title,
		TitleEn:    req.TitleEn,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Language:   language,
		AuthorID:   authorID,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Published {
		article.PublishedAt = &now
	}

	if err := svc.sqlSvc.Articles().Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (svc *ContentService) UpdateArticle(id string, req dto.UpdateArticleRequest) (*model.Article, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	article, err := svc.sqlSvc.Articles().Get(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Article not found")
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.TitleEn != nil {
		article.TitleEn = *req.TitleEn
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if req.CoverImage != nil {
		article.CoverImage = *req.CoverImage
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Language != nil {
		article.Language = *req.Language
	}
	if req.Published != nil {
		wasPublished := article.Published
		article.Published = *req.Published
		if article.Published && !wasPublished {
			now := time.Now()
			article.PublishedAt = &now
		}
	}

	article.UpdatedAt = time.Now()

	if err := svc.sqlSvc.Articles().Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (svc *ContentService) DeleteArticle(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	if _, err := svc.sqlSvc.Articles().Get(ctx, id); err != nil {
		return shared.NewNotFoundError(err, "Article not found")
	}

	return svc.sqlSvc.Articles().Delete(ctx, id)
}

// ==================== SLUG HELPERS ====================

var slugStripPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify builds a URL slug keeping Arabic letters intact; Arabic slugs are
// first-class on the site and URL-encode fine.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	if len(slug) > 200 {
		// Cut on a rune boundary so Arabic titles never truncate to a
		// split multi-byte sequence.
		cut := 200
		for cut > 0 && !utf8.RuneStart(slug[cut]) {
			cut--
		}
		slug = strings.Trim(slug[:cut], "-")
	}

	return slug
}
