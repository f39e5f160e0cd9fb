package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

// MappingsHandler serves reverse lookups over the user-to-work-order
// mapping index
type MappingsHandler struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewMappingsHandler creates a mappings handler with dependencies
func NewMappingsHandler(db *gorm.DB, logger *zap.Logger) *MappingsHandler {
	return &MappingsHandler{
		DB:     db,
		Logger: logger,
	}
}

// MappingsResponse represents the response structure for the work-order
// lookup endpoint
type MappingsResponse struct {
	WorkOrders []MappingDTO `json:"work_orders"`
	HasMore    bool         `json:"has_more"`
}

// MappingDTO represents one mapping row in the response
type MappingDTO struct {
	WorkOrderID      string `json:"work_order_id"`
	WorkAllocationID string `json:"work_allocation_id"`
	Status           string `json:"status"`
	UpdatedAt        string `json:"updated_at"` // UTC ISO 8601 format
}

// GetUserWorkOrders handles GET /api/v1/users/:userID/workorders
// Query parameters:
//   - limit (optional, default 25): Number of rows to return
//   - offset (optional, default 0): Number of rows to skip
func (h *MappingsHandler) GetUserWorkOrders(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userID path parameter is required",
		})
	}

	limit := 25 // default limit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsedLimit
	}

	offset := 0 // default offset
	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsedOffset, err := strconv.Atoi(offsetStr)
		if err != nil || parsedOffset < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "offset must be a non-negative integer",
			})
		}
		offset = parsedOffset
	}

	var rows []models.UserWorkOrderMapping
	err := h.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit + 1). // Fetch one extra to determine has_more
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		h.Logger.Error("Failed to query user work order mappings",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch work orders",
		})
	}

	dtos, hasMore := toMappingDTOs(rows, limit)

	return c.JSON(MappingsResponse{
		WorkOrders: dtos,
		HasMore:    hasMore,
	})
}

// toMappingDTOs converts query rows to response DTOs. rows may carry one
// extra row beyond limit, fetched to detect a further page; it is trimmed
// off and reported as has_more.
func toMappingDTOs(rows []models.UserWorkOrderMapping, limit int) ([]MappingDTO, bool) {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit] // Remove the extra row
	}

	dtos := make([]MappingDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, MappingDTO{
			WorkOrderID:      row.WorkOrderID,
			WorkAllocationID: row.WorkAllocationID,
			Status:           row.Status,
			UpdatedAt:        row.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return dtos, hasMore
}
