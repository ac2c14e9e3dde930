package notifications

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/lpkfarafi/lms-backend/configs"
)

type FonnteService struct {
	Token       string
	CountryCode string
}

var WhatsAppClient *FonnteService

func InitWhatsAppService() {
	token := config.Config("FONNTE_TOKEN")
	countryCode := config.Config("WA_COUNTRY_CODE")
	if countryCode == "" {
		countryCode = "62"
	}

	if token == "" {
		log.Println("⚠️ WhatsApp service not configured. Missing FONNTE_TOKEN.")
		WhatsAppClient = nil
		return
	}

	WhatsAppClient = &FonnteService{
		Token:       token,
		CountryCode: countryCode,
	}
	log.Println("✅ WhatsApp service initialized successfully.")
}

func (s *FonnteService) send(target, message string) error {
	endpoint := "https://api.fonnte.com/send"

	if target == "" {
		return fmt.Errorf("empty recipient phone number")
	}

	form := url.Values{}
	form.Set("target", target)
	form.Set("message", message)
	form.Set("countryCode", s.CountryCode)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Authorization", s.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fonnte API returned status %d", resp.StatusCode)
	}

	return nil
}

// SendWhatsApp is fire-and-forget: every failure is logged and swallowed so a
// dead gateway can never fail or block the operation that triggered the
// message. There is no inline retry.
func SendWhatsApp(phone, message string) {
	if WhatsAppClient == nil {
		log.Println("WhatsApp client not initialized, skipping message send.")
		return
	}

	if err := WhatsAppClient.send(phone, message); err != nil {
		log.Printf("🔥 Failed to send WhatsApp message to %s: %v", phone, err)
		return
	}

	log.Printf("✅ WhatsApp message sent successfully to %s", phone)
}
