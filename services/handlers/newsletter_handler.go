package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"
)

type NewsletterHandler struct {
	newsletterSvc NewsletterServiceInterface
}

func NewNewsletterHandler(newsletterSvc NewsletterServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterSvc: newsletterSvc,
	}
}

// @Summary Subscribe
// @Description Subscribe an email address to the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param subscribeRequest body dto.SubscribeRequest true "Subscription request"
// @Success 200 {object} shared.Response{data=dto.SubscribeResponse}
// @Router /api/v1/newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		resp := dto.CreateValidationErrorResponse(err)
		return shared.ResponseJSON(c, fiber.StatusBadRequest, resp.Message, resp.Errors)
	}

	result, err := h.newsletterSvc.Subscribe(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Subscriber Count
// @Description Get the number of active subscribers
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=int64}
// @Router /api/v1/admin/newsletter/count [get]
func (h *NewsletterHandler) SubscriberCount(c *fiber.Ctx) error {
	count, err := h.newsletterSvc.SubscriberCount()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", count)
}
