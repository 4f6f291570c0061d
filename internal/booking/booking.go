package booking

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"nutri-agenda-server/internal/models"
	"nutri-agenda-server/internal/schedule"
)

var (
	// ErrNutritionistNotFound is returned when the nutritionist does not
	// exist or is not visible for booking.
	ErrNutritionistNotFound = errors.New("nutritionist not found")

	// ErrNotApproved is returned when the profile exists but has not
	// passed moderation yet.
	ErrNotApproved = errors.New("nutritionist is not accepting bookings")

	// ErrPastSlot is returned when the requested time is not strictly in
	// the future.
	ErrPastSlot = errors.New("appointment time must be in the future")

	// ErrUnsupportedModality is returned when the nutritionist does not
	// offer the requested consultation format.
	ErrUnsupportedModality = errors.New("modality not offered by this nutritionist")

	// ErrSlotTaken is returned when the slot was booked by someone else
	// between listing and reserving. Callers should fetch fresh slots and
	// pick again; retrying the same request can only fail.
	ErrSlotTaken = errors.New("slot no longer available")
)

// Service exposes the booking ledger and the reservation write path.
// All methods take the clock as an argument where it matters, keeping
// them deterministic under test.
type Service struct {
	db  *gorm.DB
	loc *time.Location
}

// NewService creates a booking service bound to the given database and
// the platform's display time zone.
func NewService(db *gorm.DB, loc *time.Location) *Service {
	return &Service{db: db, loc: loc}
}

// BookedTimes returns the start times of every confirmed appointment of
// the nutritionist on the given calendar day, ascending.
func (s *Service) BookedTimes(nutritionistID string, date time.Time) ([]time.Time, error) {
	day := date.In(s.loc)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 0, 1)

	var times []time.Time
	err := s.db.Model(&models.Appointment{}).
		Where("nutritionist_id = ? AND status = ? AND start_at >= ? AND start_at < ?",
			nutritionistID, models.StatusConfirmed, from.UTC(), to.UTC()).
		Order("start_at asc").
		Pluck("start_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// HasConflict reports whether a confirmed appointment already exists for
// the nutritionist at exactly that instant.
func (s *Service) HasConflict(nutritionistID string, startAt time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("nutritionist_id = ? AND status = ? AND start_at = ?",
			nutritionistID, models.StatusConfirmed, startAt.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AvailableSlots lists the bookable start times for a nutritionist on
// one calendar day: the weekly schedule expanded to the consultation
// duration, minus booked and past slots. Unknown and unapproved
// nutritionists are both reported as not found, so unapproved profiles
// stay invisible.
func (s *Service) AvailableSlots(nutritionistID string, date time.Time, now time.Time) ([]time.Time, error) {
	nutritionist, err := s.visibleNutritionist(nutritionistID)
	if err != nil {
		return nil, err
	}

	booked, err := s.BookedTimes(nutritionistID, date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(nutritionist.ConsultationDuration) * time.Minute
	return schedule.GenerateSlots(nutritionist.WeeklySchedule, date, duration, booked, now, s.loc), nil
}

// Reserve books a consultation slot for a client. The insert runs in a
// transaction and relies on the confirmed-slot uniqueness constraint to
// serialize concurrent requests for the same slot: no read-then-write,
// no application-level lock. Exactly one of two racing calls wins; the
// loser gets ErrSlotTaken.
func (s *Service) Reserve(nutritionistID, clientID string, startAt time.Time, modality models.Modality, now time.Time) (*models.Appointment, error) {
	var nutritionist models.Nutritionist
	if err := s.db.First(&nutritionist, "id = ?", nutritionistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNutritionistNotFound
		}
		return nil, err
	}
	if !nutritionist.Approved {
		return nil, ErrNotApproved
	}
	if !startAt.After(now) {
		return nil, ErrPastSlot
	}
	if !nutritionist.SupportsModality(modality) {
		return nil, ErrUnsupportedModality
	}

	appointment := models.Appointment{
		NutritionistID: nutritionistID,
		ClientID:       clientID,
		StartAt:        startAt.UTC(),
		Modality:       modality,
		Status:         models.StatusConfirmed,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return &appointment, nil
}

// Transition moves an appointment out of the confirmed state. Confirmed
// is the only non-terminal status; cancelling clears the Active marker
// (via the model hook) so the slot can be booked again.
func (s *Service) Transition(appointment *models.Appointment, to models.AppointmentStatus) error {
	if !to.IsTerminal() {
		return errors.New("appointments can only transition to a terminal status")
	}
	if appointment.Status.IsTerminal() {
		return errors.New("appointment is already in a terminal status")
	}
	appointment.Status = to
	return s.db.Save(appointment).Error
}

func (s *Service) visibleNutritionist(id string) (*models.Nutritionist, error) {
	var nutritionist models.Nutritionist
	err := s.db.First(&nutritionist, "id = ? AND approved = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNutritionistNotFound
		}
		return nil, err
	}
	return &nutritionist, nil
}

// isDuplicate matches duplicate-key failures across drivers. GORM's
// error translation covers MySQL and SQLite; the message checks are a
// fallback for drivers opened without TranslateError.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
