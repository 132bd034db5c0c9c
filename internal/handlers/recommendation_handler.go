package handlers

import (
	"freshcart/internal/middleware"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecommendationHandler serves personalized product recommendations and the
// activity tracking endpoint that feeds them.
type RecommendationHandler struct {
	recommendations *services.RecommendationService
	activities      *services.ActivityService
	validate        *validator.Validate
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendations *services.RecommendationService, activities *services.ActivityService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		activities:      activities,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the recommendation routes. The GET endpoint must
// sit behind OptionalAuth so anonymous callers reach the cold-start path.
func (h *RecommendationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/recommendations", h.HandleGetRecommendations)
}

// RegisterActivityRoutes registers the tracking endpoint (auth required).
func (h *RecommendationHandler) RegisterActivityRoutes(router fiber.Router) {
	router.Post("/activities", h.HandleTrackActivity)
}

// TrackActivityRequest is the request body for recording an interaction.
type TrackActivityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=VIEW WISHLIST ADD_TO_CART PURCHASE"`
}

// HandleGetRecommendations returns the ranked product list for the caller.
// Anonymous callers get the global best-seller list.
func (h *RecommendationHandler) HandleGetRecommendations(c *fiber.Ctx) error {
	products, err := h.recommendations.RecommendForUser(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleTrackActivity appends an interaction to the activity log.
func (h *RecommendationHandler) HandleTrackActivity(c *fiber.Ctx) error {
	var req TrackActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.activities.Track(middleware.UserID(c), req.ProductID, models.ActivityAction(req.Action)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Activity recorded"})
}
