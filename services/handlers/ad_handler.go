package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"
)

type AdHandler struct {
	adsSvc AdsServiceInterface
}

func NewAdHandler(adsSvc AdsServiceInterface) *AdHandler {
	return &AdHandler{
		adsSvc: adsSvc,
	}
}

// @Summary Serve Ads
// @Description Get the eligible ads for a placement, ordered by priority
// @Tags ads
// @Accept json
// @Produce json
// @Param placement query string true "Ad placement slot"
// @Param type query string false "Ad type filter"
// @Param limit query int false "Max ads to return"
// @Param rotate query bool false "Return the full rotation set"
// @Success 200 {object} shared.Response{data=dto.AdListResponse}
// @Router /api/v1/ads/serve [get]
func (h *AdHandler) ServeAds(c *fiber.Ctx) error {
	var req dto.ServeAdsRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	clientIP := shared.GetClientIP(c)
	ads := h.adsSvc.ServeAds(req, clientIP, c.Get("User-Agent"))

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", ads)
}

// @Summary Record Ad Click
// @Description Record a click on an ad; always succeeds from the client's view
// @Tags ads
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} shared.Response{data=dto.ClickResponse}
// @Router /api/v1/ads/{id}/click [post]
func (h *AdHandler) RecordClick(c *fiber.Ctx) error {
	adID := c.Params("id")
	if adID == "" {
		return shared.NewBadRequestError(nil, "Ad ID is required")
	}

	placement := c.Query("placement")
	clientIP := shared.GetClientIP(c)

	h.adsSvc.RecordClick(adID, placement, clientIP, c.Get("User-Agent"), c.Get("Referer"))

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.ClickResponse{Message: "Click recorded"})
}

// ==================== ADMIN ====================

// @Summary List Ads
// @Description List ads with optional filters for the admin panel
// @Tags admin
// @Accept json
// @Produce json
// @Param placement query string false "Placement filter"
// @Param type query string false "Type filter"
// @Param status query string false "Status filter: active, inactive, scheduled, expired"
// @Param is_active query bool false "Active flag filter"
// @Param limit query int false "Max ads to return"
// @Success 200 {object} shared.Response{data=dto.AdListResponse}
// @Router /api/v1/ads [get]
func (h *AdHandler) ListAds(c *fiber.Ctx) error {
	var req dto.ListAdsRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	ads, err := h.adsSvc.ListAds(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", ads)
}

// @Summary Get Ad
// @Description Get a single ad by ID
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} shared.Response{data=dto.AdResponse}
// @Router /api/v1/ads/{id} [get]
func (h *AdHandler) GetAd(c *fiber.Ctx) error {
	ad, err := h.adsSvc.GetAd(c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.AdResponse{Ad: ad})
}

// @Summary Create Ad
// @Description Create a new ad
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateAdRequest true "Ad to create"
// @Success 201 {object} shared.Response{data=dto.AdResponse}
// @Router /api/v1/ads [post]
func (h *AdHandler) CreateAd(c *fiber.Ctx) error {
	var req dto.CreateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	ad, err := h.adsSvc.CreateAd(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", dto.AdResponse{Ad: ad})
}

// @Summary Update Ad
// @Description Update fields of an existing ad
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param updateRequest body dto.UpdateAdRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.AdResponse}
// @Router /api/v1/ads/{id} [patch]
func (h *AdHandler) UpdateAd(c *fiber.Ctx) error {
	var req dto.UpdateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	ad, err := h.adsSvc.UpdateAd(c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.AdResponse{Ad: ad})
}

// @Summary Delete Ad
// @Description Delete an ad
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} shared.Response{data=string}
// @Router /api/v1/ads/{id} [delete]
func (h *AdHandler) DeleteAd(c *fiber.Ctx) error {
	if err := h.adsSvc.DeleteAd(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "Ad deleted")
}
