package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/middleware"
	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/schedule"
	"nutri-agenda-server/internal/utils"
)

// NutritionistHandler handles nutritionist profile and schedule requests.
type NutritionistHandler struct {
	DB *gorm.DB
}

// NewNutritionistHandler creates a new NutritionistHandler.
func NewNutritionistHandler(db *gorm.DB) *NutritionistHandler {
	return &NutritionistHandler{DB: db}
}

// NutritionistResponse is the client-facing projection of a profile.
type NutritionistResponse struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Specialty            string              `json:"specialty"`
	ConsultationPrice    float64             `json:"consultationPrice"`
	ConsultationDuration int                 `json:"consultationDuration"`
	Modalities           models.ModalityList `json:"modalities"`
}

func toNutritionistResponse(n models.Nutritionist) NutritionistResponse {
	return NutritionistResponse{
		ID:                   n.ID,
		Name:                 n.User.FullName(),
		Specialty:            n.Specialty,
		ConsultationPrice:    n.ConsultationPrice,
		ConsultationDuration: n.ConsultationDuration,
		Modalities:           n.Modalities,
	}
}

// GetNutritionists lists approved nutritionists, optionally filtered by
// specialty. Unapproved profiles are never listed.
func (h *NutritionistHandler) GetNutritionists(c *gin.Context) {
	query := h.DB.Preload("User").Where("approved = ?", true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var nutritionists []models.Nutritionist
	if err := query.Find(&nutritionists).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch nutritionists: "+err.Error())
		return
	}

	responses := make([]NutritionistResponse, len(nutritionists))
	for i, n := range nutritionists {
		responses[i] = toNutritionistResponse(n)
	}

	utils.Success(c, "Nutritionists fetched successfully", responses)
}

// GetNutritionistByID fetches a single approved nutritionist.
func (h *NutritionistHandler) GetNutritionistByID(c *gin.Context) {
	var nutritionist models.Nutritionist
	err := h.DB.Preload("User").First(&nutritionist, "id = ? AND approved = ?", c.Param("id"), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Nutritionist not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Nutritionist fetched successfully", toNutritionistResponse(nutritionist))
}

// UpsertProfileRequest represents the request body for completing or
// updating the nutritionist's own profile.
type UpsertProfileRequest struct {
	Specialty            string   `json:"specialty" binding:"required,max=100"`
	ConsultationPrice    float64  `json:"consultationPrice" binding:"required,gt=0"`
	ConsultationDuration int      `json:"consultationDuration" binding:"required,gt=0"`
	Modalities           []string `json:"modalities" binding:"omitempty,dive,oneof=PRESENCIAL ONLINE"`
}

// UpsertMyProfile creates or updates the authenticated nutritionist's
// profile. New profiles start unapproved; moderation flips the flag.
func (h *NutritionistHandler) UpsertMyProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpsertProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	modalities := make(models.ModalityList, len(req.Modalities))
	for i, m := range req.Modalities {
		modalities[i] = models.Modality(m)
	}

	var nutritionist models.Nutritionist
	err := h.DB.First(&nutritionist, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		nutritionist = models.Nutritionist{UserID: userID}
	case err != nil:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	nutritionist.Specialty = req.Specialty
	nutritionist.ConsultationPrice = req.ConsultationPrice
	nutritionist.ConsultationDuration = req.ConsultationDuration
	nutritionist.Modalities = modalities

	if err := h.DB.Save(&nutritionist).Error; err != nil {
		utils.InternalServerError(c, "Failed to save profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile saved successfully", nutritionist)
}

// GetMySchedule returns the authenticated nutritionist's weekly schedule.
func (h *NutritionistHandler) GetMySchedule(c *gin.Context) {
	nutritionist, ok := h.ownProfile(c)
	if !ok {
		return
	}
	utils.Success(c, "Schedule fetched successfully", nutritionist.WeeklySchedule)
}

// IntervalInput is one weekday's availability window in a schedule update.
type IntervalInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// UpdateScheduleRequest represents the request body for replacing the
// weekly schedule. Days absent from the map become unavailable.
type UpdateScheduleRequest struct {
	Schedule map[string]IntervalInput `json:"schedule" binding:"required"`
}

// UpdateMySchedule replaces the authenticated nutritionist's weekly
// schedule. Unknown weekday keys and inverted intervals are rejected
// before anything is persisted.
func (h *NutritionistHandler) UpdateMySchedule(c *gin.Context) {
	nutritionist, ok := h.ownProfile(c)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	weekly := make(schedule.WeeklySchedule, len(req.Schedule))
	for key, window := range req.Schedule {
		day, err := schedule.ParseWeekday(key)
		if err != nil {
			utils.BadRequest(c, "Invalid schedule: "+err.Error())
			return
		}
		start, err := schedule.ParseTimeOfDay(window.Start)
		if err != nil {
			utils.BadRequest(c, "Invalid schedule: "+err.Error())
			return
		}
		end, err := schedule.ParseTimeOfDay(window.End)
		if err != nil {
			utils.BadRequest(c, "Invalid schedule: "+err.Error())
			return
		}
		weekly[day] = schedule.Interval{Start: start, End: end}
	}

	if err := weekly.Validate(); err != nil {
		utils.BadRequest(c, "Invalid schedule: "+err.Error())
		return
	}

	nutritionist.WeeklySchedule = weekly
	if err := h.DB.Save(nutritionist).Error; err != nil {
		utils.InternalServerError(c, "Failed to save schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule updated successfully", nutritionist.WeeklySchedule)
}

func (h *NutritionistHandler) ownProfile(c *gin.Context) (*models.Nutritionist, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var nutritionist models.Nutritionist
	if err := h.DB.First(&nutritionist, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Complete your nutritionist profile first")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &nutritionist, true
}
