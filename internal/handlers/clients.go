package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/middleware"
	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/utils"
)

// ClientHandler handles client profile requests.
type ClientHandler struct {
	DB *gorm.DB
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

// UpsertClientProfileRequest represents the request body for completing
// or updating the client's own profile.
type UpsertClientProfileRequest struct {
	WeightKg *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	HeightM  *float64 `json:"heightM" binding:"omitempty,gt=0"`
	Age      *int     `json:"age" binding:"omitempty,gt=0"`
	Goal     string   `json:"goal" binding:"omitempty,oneof=EMAGRECIMENTO GANHO_MASSA REEDUCACAO_ALIMENTAR NUTRICAO_ESPORTIVA MELHORAR_SAUDE OUTRO"`
}

// UpsertMyProfile creates or updates the authenticated client's profile.
func (h *ClientHandler) UpsertMyProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpsertClientProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var client models.Client
	err := h.DB.First(&client, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		client = models.Client{UserID: userID}
	case err != nil:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	if req.WeightKg != nil {
		client.WeightKg = req.WeightKg
	}
	if req.HeightM != nil {
		client.HeightM = req.HeightM
	}
	if req.Age != nil {
		client.Age = req.Age
	}
	if req.Goal != "" {
		client.Goal = models.ClientGoal(req.Goal)
	}

	if err := h.DB.Save(&client).Error; err != nil {
		utils.InternalServerError(c, "Failed to save profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile saved successfully", client)
}

// GetMyProfile returns the authenticated client's profile.
func (h *ClientHandler) GetMyProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Client profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", client)
}
