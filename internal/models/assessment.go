package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assessment is an authored assessment definition. Questions is the opaque
// serialized question blob exactly as the authoring side supplied it; it is
// only interpreted at grading time. Edits replace the blob and MaxScore
// wholesale, there are no partial patch semantics.
type Assessment struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	CourseID  string         `json:"course_id" gorm:"size:36;index;not null" validate:"required"`
	Title     string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Questions datatypes.JSON `json:"questions" gorm:"type:jsonb"`
	MaxScore  int            `json:"max_score" gorm:"not null" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessments"
}
