package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/database"
	"wellnest_backend/pkg/email"
	"wellnest_backend/pkg/plans"
)

// InitTrialReminderCron sends trial-ending reminders each morning. It backs
// up the trial_will_end webhook, which Stripe only fires once.
func InitTrialReminderCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkEndingTrials()
	})

	if err != nil {
		log.Printf("Could not initialize trial reminder cron: %v", err)
		return
	}

	c.Start()
}

func checkEndingTrials() {
	log.Println("Checking for trials ending soon...")

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		var subs []model.Subscription
		targetDate := time.Now().AddDate(0, 0, days).Format("2006-01-02")

		err := database.DB.Where("plan_type = ? AND status = ? AND DATE(trial_ends_at) = ?",
			string(plans.Ambassador), "trialing", targetDate).
			Preload("Member").
			Find(&subs).Error

		if err != nil {
			log.Printf("Error fetching ending trials: %v", err)
			continue
		}

		log.Printf("Found %d trials ending in %d days", len(subs), days)

		for _, sub := range subs {
			if email.GlobalEmailService == nil || sub.TrialEndsAt == nil {
				continue
			}

			regular, _ := plans.Get(plans.Regular)
			err := email.GlobalEmailService.SendTrialEndingWarning(
				sub.Member.Email,
				sub.Member.Name,
				days,
				*sub.TrialEndsAt,
				regular.ChargedPounds(),
			)
			if err != nil {
				log.Printf("Error sending trial reminder to %s: %v", sub.Member.Email, err)
			} else {
				log.Printf("Sent trial reminder to %s for trial ending in %d days", sub.Member.Email, days)
			}
		}
	}
}
