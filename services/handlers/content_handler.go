package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List Articles
// @Description List published articles with optional filters
// @Tags content
// @Accept json
// @Produce json
// @Param category query string false "Filter by category"
// @Param language query string false "Filter by language: ar or en"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.ArticleListResponse}
// @Router /api/v1/articles [get]
func (h *ContentHandler) ListArticles(c *fiber.Ctx) error {
	var req dto.ListArticlesRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	articles, err := h.contentSvc.ListArticles(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", articles)
}

// @Summary Get Article
// @Description Get a published article by slug
// @Tags content
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} shared.Response{data=model.Article}
// @Router /api/v1/articles/{slug} [get]
func (h *ContentHandler) GetArticle(c *fiber.Ctx) error {
	article, err := h.contentSvc.GetArticle(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", article)
}

// @Summary List Categories
// @Description List article categories
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (h *ContentHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.contentSvc.ListCategories()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", categories)
}

// ==================== ADMIN ====================

// @Summary Create Article
// @Description Create a new article
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateArticleRequest true "Article to create"
// @Success 201 {object} shared.Response{data=model.Article}
// @Router /api/v1/admin/articles [post]
func (h *ContentHandler) CreateArticle(c *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	authorID, _ := c.Locals(shared.UserID).(string)

	article, err := h.contentSvc.CreateArticle(authorID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", article)
}

// @Summary Update Article
// @Description Update fields of an existing article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param updateRequest body dto.UpdateArticleRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=model.Article}
// @Router /api/v1/admin/articles/{id} [patch]
func (h *ContentHandler) UpdateArticle(c *fiber.Ctx) error {
	var req dto.UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	article, err := h.contentSvc.UpdateArticle(c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", article)
}

// @Summary Delete Article
// @Description Delete an article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} shared.Response{data=string}
// @Router /api/v1/admin/articles/{id} [delete]
func (h *ContentHandler) DeleteArticle(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteArticle(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "Article deleted")
}
