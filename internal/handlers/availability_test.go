package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"nutri-agenda-server/internal/booking"
	"nutri-agenda-server/internal/models"
)

func setupAvailabilityRouter(t *testing.T) (*gin.Engine, models.Nutritionist) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	nutritionist := newTestNutritionist(t, db, true)
	user, _ := newTestClient(t, db)

	handler := NewAvailabilityHandler(booking.NewService(db, time.UTC), time.UTC)

	router := gin.New()
	router.GET("/api/v1/availability", withIdentity(user.ID, models.RoleClient), handler.GetAvailability)
	return router, nutritionist
}

func TestGetAvailabilityRequiresParams(t *testing.T) {
	router, nutritionist := setupAvailabilityRouter(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "missing both", query: "", wantStatus: http.StatusBadRequest},
		{name: "missing date", query: "?nutritionist_id=" + nutritionist.ID, wantStatus: http.StatusBadRequest},
		{name: "missing nutritionist", query: "?date=2030-03-04", wantStatus: http.StatusBadRequest},
		{name: "bad date format", query: "?nutritionist_id=" + nutritionist.ID + "&date=04/03/2030", wantStatus: http.StatusBadRequest},
		{name: "unknown nutritionist", query: "?nutritionist_id=00000000-0000-0000-0000-000000000000&date=2030-03-04", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/availability"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetAvailabilityListsSlots(t *testing.T) {
	router, nutritionist := setupAvailabilityRouter(t)
	date := nextMonday(time.UTC)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?nutritionist_id="+nutritionist.ID+"&date="+date.Format("2006-01-02"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	var payload AvailabilityResponse
	assert.NoError(t, json.Unmarshal(envelope.Data, &payload))

	// 08:00-12:00 window with 60-minute consultations.
	assert.Len(t, payload.Slots, 4)
	assert.Equal(t, "08:00", payload.Slots[0].Display)
	assert.Equal(t, "11:00", payload.Slots[3].Display)

	first, err := time.Parse(time.RFC3339, payload.Slots[0].ISO)
	assert.NoError(t, err)
	assert.True(t, first.Equal(date.Add(8*time.Hour)))
}

func TestGetAvailabilityHidesUnapprovedProfiles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	nutritionist := newTestNutritionist(t, db, false)
	user, _ := newTestClient(t, db)

	handler := NewAvailabilityHandler(booking.NewService(db, time.UTC), time.UTC)
	router := gin.New()
	router.GET("/api/v1/availability", withIdentity(user.ID, models.RoleClient), handler.GetAvailability)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?nutritionist_id="+nutritionist.ID+"&date="+nextMonday(time.UTC).Format("2006-01-02"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
