package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID      uuid.UUID `gorm:"not null;uniqueIndex:idx_certificates_student_course" json:"student_id"`
	CourseID       uuid.UUID `gorm:"not null;uniqueIndex:idx_certificates_student_course" json:"course_id"`
	SerialNumber   string    `gorm:"size:20;not null;unique" json:"serial_number"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CertificateURL string    `gorm:"type:text;not null" json:"certificate_url"`

	Student User   `gorm:"foreignkey:StudentID" json:"-"`
	Course  Course `gorm:"foreignkey:CourseID" json:"-"`
}

func (cert *Certificate) BeforeCreate(tx *gorm.DB) error {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	return nil
}
