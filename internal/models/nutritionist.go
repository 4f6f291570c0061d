package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"nutri-agenda-server/internal/schedule"
)

// Modality represents the consultation format offered to clients.
type Modality string

const (
	ModalityInPerson Modality = "PRESENCIAL"
	ModalityOnline   Modality = "ONLINE"
)

// ModalityList is stored as a JSON array column.
type ModalityList []Modality

// Value serializes the list for storage.
func (m ModalityList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan deserializes the list from its column.
func (m *ModalityList) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ModalityList", src)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// Nutritionist is the professional profile attached to a user with the
// NUTRICIONISTA role. Only approved profiles are searchable and bookable;
// the approval flag is flipped by the moderation back office.
type Nutritionist struct {
	BaseModel
	UserID               string                  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialty            string                  `gorm:"size:100" json:"specialty"`
	ConsultationPrice    float64                 `gorm:"type:decimal(8,2)" json:"consultationPrice"`
	ConsultationDuration int                     `gorm:"not null" json:"consultationDuration"` // minutes
	Modalities           ModalityList            `gorm:"type:varchar(255)" json:"modalities"`
	WeeklySchedule       schedule.WeeklySchedule `gorm:"type:json" json:"weeklySchedule,omitempty"`
	Approved             bool                    `gorm:"default:false" json:"approved"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// SupportsModality reports whether the nutritionist offers the given
// consultation format. An empty list means both formats are offered.
func (n *Nutritionist) SupportsModality(m Modality) bool {
	if len(n.Modalities) == 0 {
		return m == ModalityInPerson || m == ModalityOnline
	}
	for _, offered := range n.Modalities {
		if offered == m {
			return true
		}
	}
	return false
}
