package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"
)

type ToolHandler struct {
	toolsSvc ToolsServiceInterface
}

func NewToolHandler(toolsSvc ToolsServiceInterface) *ToolHandler {
	return &ToolHandler{
		toolsSvc: toolsSvc,
	}
}

// @Summary List Tools
// @Description List the AI tools directory with optional filters
// @Tags tools
// @Accept json
// @Produce json
// @Param category query string false "Filter by category"
// @Param pricing query string false "Filter by pricing: free, freemium, paid"
// @Param featured query bool false "Featured tools only"
// @Param limit query int false "Max tools to return"
// @Success 200 {object} shared.Response{data=dto.ToolListResponse}
// @Router /api/v1/tools [get]
func (h *ToolHandler) ListTools(c *fiber.Ctx) error {
	var req dto.ListToolsRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	tools, err := h.toolsSvc.ListTools(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", tools)
}

// @Summary Get Tool
// @Description Get an AI tool by slug
// @Tags tools
// @Accept json
// @Produce json
// @Param slug path string true "Tool slug"
// @Success 200 {object} shared.Response{data=model.AITool}
// @Router /api/v1/tools/{slug} [get]
func (h *ToolHandler) GetTool(c *fiber.Ctx) error {
	tool, err := h.toolsSvc.GetTool(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", tool)
}

// ==================== ADMIN ====================

// @Summary Create Tool
// @Description Add a tool to the directory
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateToolRequest true "Tool to create"
// @Success 201 {object} shared.Response{data=model.AITool}
// @Router /api/v1/admin/tools [post]
func (h *ToolHandler) CreateTool(c *fiber.Ctx) error {
	var req dto.CreateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	tool, err := h.toolsSvc.CreateTool(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", tool)
}

// @Summary Update Tool
// @Description Update fields of a tool
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tool ID"
// @Param updateRequest body dto.UpdateToolRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=model.AITool}
// @Router /api/v1/admin/tools/{id} [patch]
func (h *ToolHandler) UpdateTool(c *fiber.Ctx) error {
	var req dto.UpdateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	tool, err := h.toolsSvc.UpdateTool(c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", tool)
}

// @Summary Delete Tool
// @Description Remove a tool from the directory
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tool ID"
// @Success 200 {object} shared.Response{data=string}
// @Router /api/v1/admin/tools/{id} [delete]
func (h *ToolHandler) DeleteTool(c *fiber.Ctx) error {
	if err := h.toolsSvc.DeleteTool(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "Tool deleted")
}
