package models

import "time"

type Course struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	Title          string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description    string  `json:"description" gorm:"type:text" validate:"required"`
	InstructorID   string  `json:"instructor_id" gorm:"size:36;index"`
	InstructorName string  `json:"instructor_name" gorm:"size:200"`
	MediaURL       *string `json:"media_url" gorm:"size:2048" validate:"omitempty,max=2048"`

	// Relations
	Materials []CourseMaterial `json:"materials" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	EnrolledStudents int `json:"enrolled_students" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CourseMaterial struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	CourseID   string    `json:"course_id" gorm:"size:36;index;not null"`
	Title      string    `json:"title" gorm:"not null;size:200" validate:"required"`
	Type       string    `json:"type" gorm:"size:50"`
	URL        string    `json:"url" gorm:"size:2048" validate:"required,max=2048"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Enrollment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	StudentID string    `json:"student_id" gorm:"size:36;index:idx_enrollment_student_course;not null"`
	CourseID  string    `json:"course_id" gorm:"size:36;index:idx_enrollment_student_course;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}

func (Enrollment) TableName() string {
	return "enrollments"
}
