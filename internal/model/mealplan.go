package model

// MealPlan is a 7-day diet sample for one constitution.
type MealPlan struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DailyMeals  []DayMeals `json:"dailyMeals"`
	Tips        []string   `json:"tips"`
}

type DayMeals struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snack     string `json:"snack"`
}

// SendMealPlanRequest is the body of POST /api/email/send-meal-plan
type SendMealPlanRequest struct {
	Email        string `json:"email"`
	Constitution string `json:"constitution"`
	PetName      string `json:"petName"`
}
