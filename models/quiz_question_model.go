package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizQuestion struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseID      uuid.UUID `gorm:"not null;index" json:"course_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	OptionA       string    `gorm:"type:text;not null" json:"option_a"`
	OptionB       string    `gorm:"type:text;not null" json:"option_b"`
	OptionC       string    `gorm:"type:text;not null" json:"option_c"`
	OptionD       string    `gorm:"type:text;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"-"`

	Course Course `gorm:"foreignkey:CourseID" json:"-"`
}

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
