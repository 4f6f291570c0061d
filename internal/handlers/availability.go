package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"nutri-agenda-server/internal/booking"
	"nutri-agenda-server/internal/utils"
)

// AvailabilityHandler serves the bookable slots of a nutritionist.
type AvailabilityHandler struct {
	Booking *booking.Service
	Loc     *time.Location
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(svc *booking.Service, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{Booking: svc, Loc: loc}
}

// SlotResponse is one bookable slot: a wall-clock label for display and
// the exact instant to send back when reserving.
type SlotResponse struct {
	Display string `json:"display"`
	ISO     string `json:"iso"`
}

// AvailabilityResponse wraps the slot list for one date.
type AvailabilityResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// GetAvailability handles GET /availability?nutritionist_id=<id>&date=YYYY-MM-DD.
// An empty slot list is a normal answer, not an error: it means the
// nutritionist does not attend that day or everything is taken.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	nutritionistID := c.Query("nutritionist_id")
	dateStr := c.Query("date")
	if nutritionistID == "" || dateStr == "" {
		utils.BadRequest(c, "nutritionist_id and date query parameters are required")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, h.Loc)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	slots, err := h.Booking.AvailableSlots(nutritionistID, date, time.Now().In(h.Loc))
	if err != nil {
		if errors.Is(err, booking.ErrNutritionistNotFound) {
			utils.NotFound(c, "Nutritionist not found")
		} else {
			utils.InternalServerError(c, "Failed to compute availability: "+err.Error())
		}
		return
	}

	response := AvailabilityResponse{Slots: make([]SlotResponse, len(slots))}
	for i, slot := range slots {
		response.Slots[i] = SlotResponse{
			Display: slot.Format("15:04"),
			ISO:     slot.Format(time.RFC3339),
		}
	}

	utils.Success(c, "Availability fetched successfully", response)
}
