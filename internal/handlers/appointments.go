package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/booking"
	"nutri-agenda-server/internal/middleware"
	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB      *gorm.DB
	Booking *booking.Service
	Loc     *time.Location
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, svc *booking.Service, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Booking: svc, Loc: loc}
}

// CreateAppointmentRequest represents the request body for booking a slot.
// StartDatetime must be one of the slots previously returned by the
// availability endpoint.
type CreateAppointmentRequest struct {
	NutritionistID string    `json:"nutritionistId" binding:"required,uuid"`
	StartDatetime  time.Time `json:"startDatetime" binding:"required"`
	Modality       string    `json:"modality" binding:"required,oneof=PRESENCIAL ONLINE"`
}

// CreateAppointment books a consultation slot for the authenticated
// client. On conflict the caller gets a 409 and must fetch fresh slots;
// the server never silently reassigns a nearby slot.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	client, ok := h.requireClientProfile(c)
	if !ok {
		return
	}

	appointment, err := h.Booking.Reserve(
		req.NutritionistID,
		client.ID,
		req.StartDatetime,
		models.Modality(req.Modality),
		time.Now().In(h.Loc),
	)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNutritionistNotFound):
			utils.NotFound(c, "Nutritionist not found")
		case errors.Is(err, booking.ErrNotApproved):
			utils.BadRequest(c, "This nutritionist is not accepting bookings")
		case errors.Is(err, booking.ErrPastSlot):
			utils.BadRequest(c, "Appointment time must be in the future")
		case errors.Is(err, booking.ErrUnsupportedModality):
			utils.BadRequest(c, "This nutritionist does not offer the requested modality")
		case errors.Is(err, booking.ErrSlotTaken):
			utils.Conflict(c, "Slot no longer available. Please fetch available slots again and pick another time.")
		default:
			utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user: clients see their own bookings, nutritionists their agenda,
// admins everything.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Order("start_at asc")

	var appointments []models.Appointment
	var err error
	switch userRole {
	case models.RoleClient:
		var client models.Client
		if err := h.DB.First(&client, "user_id = ?", userID).Error; err != nil {
			// No profile yet means no bookings yet.
			utils.Success(c, "Appointments fetched successfully", []models.Appointment{})
			return
		}
		err = query.Where("client_id = ?", client.ID).Find(&appointments).Error
	case models.RoleNutritionist:
		var nutritionist models.Nutritionist
		if err := h.DB.First(&nutritionist, "user_id = ?", userID).Error; err != nil {
			utils.Success(c, "Appointments fetched successfully", []models.Appointment{})
			return
		}
		err = query.Where("nutritionist_id = ?", nutritionist.ID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// UpdateAppointmentStatusRequest represents the request body for closing
// out an appointment. Both target statuses are terminal.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=CANCELADO CONCLUIDO"`
}

// UpdateAppointmentStatus transitions an appointment out of the
// confirmed state. Clients may cancel their own bookings; nutritionists
// may cancel or complete theirs; admins may do either anywhere.
// Cancelling frees the slot for rebooking.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch userRole {
	case models.RoleAdmin:
		canUpdate = true
	case models.RoleNutritionist:
		var nutritionist models.Nutritionist
		if err := h.DB.First(&nutritionist, "user_id = ?", userID).Error; err == nil {
			canUpdate = nutritionist.ID == appointment.NutritionistID
		}
	case models.RoleClient:
		var client models.Client
		if err := h.DB.First(&client, "user_id = ?", userID).Error; err == nil {
			// Clients can only cancel, never mark as completed.
			canUpdate = client.ID == appointment.ClientID && req.Status == models.StatusCancelled
		}
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to perform this status transition.")
		return
	}

	if err := h.Booking.Transition(&appointment, req.Status); err != nil {
		utils.BadRequest(c, "Invalid status transition: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) requireClientProfile(c *gin.Context) (*models.Client, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var client models.Client
	if err := h.DB.First(&client, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BadRequest(c, "Complete your client profile before booking")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &client, true
}
