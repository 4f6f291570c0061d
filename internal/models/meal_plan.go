package models

// MealPlan is a nutritionist-authored plan for a client. Plan content
// is written by hand; automated generation is out of scope.
type MealPlan struct {
	BaseModel
	ClientID       string `gorm:"size:36;index" json:"clientId"`
	NutritionistID string `gorm:"size:36;index" json:"nutritionistId"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	Meals []Meal `gorm:"foreignKey:MealPlanID" json:"meals,omitempty"`

	// Relations
	Client       Client       `gorm:"foreignKey:ClientID" json:"-"`
	Nutritionist Nutritionist `gorm:"foreignKey:NutritionistID" json:"-"`
}

// Meal is a single entry of a meal plan.
type Meal struct {
	BaseModel
	MealPlanID string `gorm:"size:36;index;not null" json:"mealPlanId"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Foods      string `gorm:"type:text" json:"foods"`
	Quantities string `gorm:"size:255" json:"quantities"`
	Calories   *int   `json:"calories,omitempty"`
}
