package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lpkfarafi/lms-backend/models"
	"gorm.io/gorm"
)

const serialSuffixLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateUniqueSerialNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, serialSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		serial := fmt.Sprintf("FRF-%d-%s", time.Now().Year(), string(b))

		var cert models.Certificate
		err := tx.Where("serial_number = ?", serial).First(&cert).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return serial, nil
			}
			return "", err
		}
	}
}
