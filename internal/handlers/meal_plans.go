package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/middleware"
	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/utils"
)

// MealPlanHandler handles meal plan requests.
type MealPlanHandler struct {
	DB *gorm.DB
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(db *gorm.DB) *MealPlanHandler {
	return &MealPlanHandler{DB: db}
}

// MealInput is one meal of a plan being created.
type MealInput struct {
	Name       string `json:"name" binding:"required,max=100"`
	Foods      string `json:"foods" binding:"required"`
	Quantities string `json:"quantities" binding:"required,max=255"`
	Calories   *int   `json:"calories" binding:"omitempty,gt=0"`
}

// CreateMealPlanRequest represents the request body for creating a meal
// plan for a client.
type CreateMealPlanRequest struct {
	ClientID string      `json:"clientId" binding:"required,uuid"`
	Notes    string      `json:"notes"`
	Meals    []MealInput `json:"meals" binding:"required,min=1,dive"`
}

// CreateMealPlan handles a nutritionist writing a plan for a client.
func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateMealPlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var nutritionist models.Nutritionist
	if err := h.DB.First(&nutritionist, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Complete your nutritionist profile first")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	plan := models.MealPlan{
		ClientID:       client.ID,
		NutritionistID: nutritionist.ID,
		Notes:          req.Notes,
		Meals:          make([]models.Meal, len(req.Meals)),
	}
	for i, meal := range req.Meals {
		plan.Meals[i] = models.Meal{
			Name:       meal.Name,
			Foods:      meal.Foods,
			Quantities: meal.Quantities,
			Calories:   meal.Calories,
		}
	}

	if err := h.DB.Create(&plan).Error; err != nil {
		utils.InternalServerError(c, "Failed to create meal plan: "+err.Error())
		return
	}

	utils.Created(c, "Meal plan created successfully", plan)
}

// GetMealPlansForUser lists meal plans: clients see plans written for
// them, nutritionists the plans they authored.
func (h *MealPlanHandler) GetMealPlansForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Meals").Order("created_at desc")

	var plans []models.MealPlan
	var err error
	switch userRole {
	case models.RoleClient:
		var client models.Client
		if err := h.DB.First(&client, "user_id = ?", userID).Error; err != nil {
			utils.Success(c, "Meal plans fetched successfully", []models.MealPlan{})
			return
		}
		err = query.Where("client_id = ?", client.ID).Find(&plans).Error
	case models.RoleNutritionist:
		var nutritionist models.Nutritionist
		if err := h.DB.First(&nutritionist, "user_id = ?", userID).Error; err != nil {
			utils.Success(c, "Meal plans fetched successfully", []models.MealPlan{})
			return
		}
		err = query.Where("nutritionist_id = ?", nutritionist.ID).Find(&plans).Error
	case models.RoleAdmin:
		err = query.Find(&plans).Error
	default:
		utils.Forbidden(c, "User role not permitted to view meal plans")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch meal plans: "+err.Error())
		return
	}

	utils.Success(c, "Meal plans fetched successfully", plans)
}
