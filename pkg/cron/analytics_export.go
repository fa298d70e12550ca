package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"wellnest_backend/pkg/analytics"
)

// InitAnalyticsExportCron uploads the previous day's analytics events to S3
// each night. A nil exporter (no bucket configured) disables the job.
func InitAnalyticsExportCron(exporter *analytics.Exporter) {
	if exporter == nil {
		log.Println("Analytics export disabled: no bucket configured")
		return
	}

	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if err := exporter.ExportDay(yesterday); err != nil {
			log.Printf("Analytics export failed: %v", err)
		}
	})

	if err != nil {
		log.Printf("Could not initialize analytics export cron: %v", err)
		return
	}

	c.Start()
}
