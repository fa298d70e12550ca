// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type TrialEndingData struct {
	Name        string
	DaysLeft    int
	TrialEndsAt time.Time
	PricePounds int64
}

type PromoUpgradeData struct {
	Name           string
	OldPricePounds int64
	NewPricePounds int64
}

type WaitlistWelcomeData struct {
	Name         string
	Position     int
	ReferralCode string
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "WellNest <hello@wellnest.example>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode >= 400 {
		log.Printf("Resend API error: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *EmailService) SendTrialEndingWarning(to, name string, daysLeft int, trialEndsAt time.Time, pricePounds int64) error {
	return s.sendTemplateEmail(to, "Your free access ends soon", "trial_ending.html", TrialEndingData{
		Name:        name,
		DaysLeft:    daysLeft,
		TrialEndsAt: trialEndsAt,
		PricePounds: pricePounds,
	})
}

func (s *EmailService) SendPromoUpgradeNotice(to, name string, oldPricePounds, newPricePounds int64) error {
	return s.sendTemplateEmail(to, "Your membership price is changing", "promo_upgrade.html", PromoUpgradeData{
		Name:           name,
		OldPricePounds: oldPricePounds,
		NewPricePounds: newPricePounds,
	})
}

func (s *EmailService) SendWaitlistWelcome(to, name string, position int, referralCode string) error {
	return s.sendTemplateEmail(to, "You're on the WellNest waitlist", "waitlist_welcome.html", WaitlistWelcomeData{
		Name:         name,
		Position:     position,
		ReferralCode: referralCode,
	})
}
