package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/notifications"
)

const reminderAfter = 48 * time.Hour

func SendPaymentReminders() {
	log.Println("Running job: SendPaymentReminders...")

	cutoff := time.Now().Add(-reminderAfter)

	var stalePending []models.Enrollment
	err := database.DB.
		Preload("Student").
		Preload("Course").
		Where("payment_status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Find(&stalePending).Error
	if err != nil {
		log.Printf("Error checking for stale pending payments: %v", err)
		return
	}

	if len(stalePending) == 0 {
		return
	}

	for _, enrollment := range stalePending {
		log.Printf("Sending payment reminder for enrollment ID: %s", enrollment.ID)

		message := fmt.Sprintf(
			"Hi %s, your enrollment for course \"%s\" is still awaiting payment. Complete the transfer and our admin will verify it shortly.",
			enrollment.Student.FullName,
			enrollment.Course.Title,
		)

		go notifications.SendWhatsApp(enrollment.Student.WhatsApp, message)
	}
}
