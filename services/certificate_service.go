package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/lpkfarafi/lms-backend/configs"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/utils"
	"gorm.io/gorm"
)

var ErrNotEligible = errors.New("student is not eligible for a certificate on this course")

// IssueCertificate renders and stores the completion certificate for an
// eligible (paid, quiz-passed) enrollment. Issuance is idempotent: an already
// issued certificate is returned as-is instead of generating a second one.
func IssueCertificate(db *gorm.DB, studentID, courseID uuid.UUID) (*models.Certificate, error) {
	eligible, err := IsCertificateEligible(db, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	var existing models.Certificate
	if err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	var student models.User
	if err := db.First(&student, "id = ?", studentID).Error; err != nil {
		return nil, err
	}
	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return nil, err
	}

	serial, err := utils.GenerateUniqueSerialNumber(db)
	if err != nil {
		return nil, err
	}

	htmlData, err := generateCertificateHTML(student.FullName, course.Title, serial)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return nil, err
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return nil, err
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, studentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return nil, err
	}

	certificate := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		SerialNumber:   serial,
		CourseTitle:    course.Title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := db.Create(&certificate).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Issued certificate %s for student %s on course %s.", serial, studentID, course.Title)
	return &certificate, nil
}

func generateCertificateHTML(studentName, courseTitle, serial string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		SerialNumber   string
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		SerialNumber:   serial,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "lms_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
