package models

// ClientGoal is the client's main objective, chosen at profile setup.
type ClientGoal string

const (
	GoalWeightLoss      ClientGoal = "EMAGRECIMENTO"
	GoalMuscleGain      ClientGoal = "GANHO_MASSA"
	GoalFoodReeducation ClientGoal = "REEDUCACAO_ALIMENTAR"
	GoalSportsNutrition ClientGoal = "NUTRICAO_ESPORTIVA"
	GoalGeneralHealth   ClientGoal = "MELHORAR_SAUDE"
	GoalOther           ClientGoal = "OUTRO"
)

// Client is the profile attached to a user with the CLIENTE role.
type Client struct {
	BaseModel
	UserID   string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	WeightKg *float64   `json:"weightKg,omitempty"`
	HeightM  *float64   `json:"heightM,omitempty"`
	Age      *int       `json:"age,omitempty"`
	Goal     ClientGoal `gorm:"size:30" json:"goal,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
