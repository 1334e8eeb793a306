package models

import (
	"encoding/json"
	"time"
)

// Intern status values.
const (
	InternStatusActive   = "active"
	InternStatusInactive = "inactive"
)

// Intern represents a tracked individual with a department and tasks.
type Intern struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Position   string    `json:"position,omitempty"`
	University string    `json:"university,omitempty"`
	SkillsJSON string    `json:"-"` // Stored as a JSON array string
	Skills     []string  `json:"skills"`
	Status     string    `json:"status"`
	JoinDate   time.Time `json:"joinDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PrepareForDB marshals the skill list into its JSON string form before saving.
func (i *Intern) PrepareForDB() {
	skillsBytes, _ := json.Marshal(i.Skills)
	i.SkillsJSON = string(skillsBytes)
}

// PrepareForAPI unmarshals the JSON string skills for API responses.
func (i *Intern) PrepareForAPI() {
	if i.SkillsJSON != "" {
		json.Unmarshal([]byte(i.SkillsJSON), &i.Skills)
	}
}

// InternUpdate carries a partial update; nil fields are left untouched.
type InternUpdate struct {
	FullName   *string   `json:"fullName"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Department *string   `json:"department"`
	Position   *string   `json:"position"`
	University *string   `json:"university"`
	Skills     *[]string `json:"skills"`
	Status     *string   `json:"status"`
}
