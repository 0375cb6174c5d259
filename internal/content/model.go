package content

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Contact holds the ways to reach the subject.
type Contact struct {
	Email      string `json:"email" yaml:"email" validate:"required,email"`
	Phone      string `json:"phone" yaml:"phone" validate:"required"`
	ResumePath string `json:"resumePath" yaml:"resumePath"`
}

// Experience is one employment entry. Highlights may contain inline markdown.
type Experience struct {
	Company    string   `json:"company" yaml:"company" validate:"required"`
	Role       string   `json:"role" yaml:"role" validate:"required"`
	Location   string   `json:"location" yaml:"location"`
	Period     string   `json:"period" yaml:"period" validate:"required"`
	Highlights []string `json:"highlights" yaml:"highlights" validate:"dive,required"`
}

// SkillCategory groups skill names under a heading.
type SkillCategory struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Skills   []string `json:"skills" yaml:"skills" validate:"min=1,dive,required"`
}

// Education is one degree entry.
type Education struct {
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Degree      string `json:"degree" yaml:"degree" validate:"required"`
	Location    string `json:"location" yaml:"location"`
}

// Resume is the read-only content rendered by the site. A loaded Resume is
// never mutated; reloads swap in a new value.
type Resume struct {
	Name       string          `json:"name" yaml:"name" validate:"required"`
	Role       string          `json:"role" yaml:"role" validate:"required"`
	Tagline    string          `json:"tagline" yaml:"tagline"`
	Contact    Contact         `json:"contact" yaml:"contact"`
	Experience []Experience    `json:"experience" yaml:"experience" validate:"min=1,dive"`
	Skills     []SkillCategory `json:"skills" yaml:"skills" validate:"min=1,dive"`
	Education  []Education     `json:"education" yaml:"education" validate:"min=1,dive"`
}

var validate = validator.New()

// Validate checks required fields.
func (r *Resume) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validate content: %w", err)
	}
	return nil
}

// ApplyDefaults replaces nil slices so JSON output never carries null lists.
func (r *Resume) ApplyDefaults() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Skills == nil {
		r.Skills = []SkillCategory{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	for i := range r.Experience {
		if r.Experience[i].Highlights == nil {
			r.Experience[i].Highlights = []string{}
		}
	}
}
