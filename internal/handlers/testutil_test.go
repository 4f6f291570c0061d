package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/schedule"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// withIdentity injects an authenticated identity the way the JWT
// middleware would.
func withIdentity(userID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

func newTestUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Email:     fmt.Sprintf("user-%s@example.com", uuid.NewString()),
		FirstName: "Ana",
		LastName:  "Silva",
		Role:      role,
	}
	if err := user.SetPassword("segredo123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func newTestNutritionist(t *testing.T, db *gorm.DB, approved bool) models.Nutritionist {
	t.Helper()
	user := newTestUser(t, db, models.RoleNutritionist)
	ws := schedule.WeeklySchedule{}
	for _, day := range schedule.Weekdays {
		ws[day] = schedule.Interval{Start: schedule.TimeOfDay{Hour: 8}, End: schedule.TimeOfDay{Hour: 12}}
	}
	nutritionist := models.Nutritionist{
		UserID:               user.ID,
		Specialty:            "Reeducação Alimentar",
		ConsultationPrice:    150,
		ConsultationDuration: 60,
		Approved:             approved,
		WeeklySchedule:       ws,
	}
	if err := db.Create(&nutritionist).Error; err != nil {
		t.Fatalf("failed to create nutritionist: %v", err)
	}
	return nutritionist
}

func newTestClient(t *testing.T, db *gorm.DB) (models.User, models.Client) {
	t.Helper()
	user := newTestUser(t, db, models.RoleClient)
	client := models.Client{UserID: user.ID}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("failed to create client profile: %v", err)
	}
	return user, client
}

// nextMonday returns the first Monday strictly after today, so booking
// times are always in the future regardless of when tests run.
func nextMonday(loc *time.Location) time.Time {
	day := time.Now().In(loc).AddDate(0, 0, 1)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

type responseEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to decode response %s: %v", body, err)
	}
	return envelope
}
