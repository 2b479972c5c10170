// Package mealplan holds the constitution meal plans and renders the
// meal-plan email.
package mealplan

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"

	"pet_constitution/internal/model"
)

const (
	clinicName    = "Onsol Integrative Animal Hospital"
	clinicContact = "02-1234-5678 | www.onsol-vet.com"
)

var (
	//go:embed plans.json
	plansJSON []byte

	//go:embed template.html
	templateHTML string
)

// Catalog maps constitution keys to their 7-day plans.
type Catalog struct {
	plans map[string]model.MealPlan
	tmpl  *template.Template
}

// Default loads the built-in plans.
func Default() (*Catalog, error) {
	var plans map[string]model.MealPlan
	if err := json.Unmarshal(plansJSON, &plans); err != nil {
		return nil, fmt.Errorf("mealplan: invalid embedded plans: %w", err)
	}
	return New(plans)
}

// New builds a catalog over plans.
func New(plans map[string]model.MealPlan) (*Catalog, error) {
	tmpl, err := template.New("meal-plan").Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("mealplan: invalid template: %w", err)
	}
	return &Catalog{plans: plans, tmpl: tmpl}, nil
}

// Lookup returns the plan for constitution. Keys are matched exactly.
func (c *Catalog) Lookup(constitution string) (model.MealPlan, bool) {
	plan, ok := c.plans[constitution]
	return plan, ok
}

// Keys lists the supported constitutions in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.plans))
	for k := range c.plans {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render produces the HTML body. All text is escaped.
func (c *Catalog) Render(petName string, plan model.MealPlan) (string, error) {
	var buf bytes.Buffer
	err := c.tmpl.Execute(&buf, struct {
		PetName       string
		Plan          model.MealPlan
		Clinic        string
		ClinicContact string
	}{petName, plan, clinicName, clinicContact})
	if err != nil {
		return "", fmt.Errorf("mealplan: render: %w", err)
	}
	return buf.String(), nil
}

// Subject is the email subject line for a meal plan.
func Subject(petName, constitution string) string {
	return fmt.Sprintf("🐾 %s's %s constitution 7-day meal plan sample", petName, constitution)
}
