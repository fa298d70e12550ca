package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"wellnest_backend/internal/model"
)

// Exporter writes each category's daily events as a CSV object to S3, one
// object per category per day, keyed by the slugged category name.
type Exporter struct {
	db       *gorm.DB
	s3Client *s3.Client
	bucket   string
}

func NewExporter(db *gorm.DB, bucket, region string) (*Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &Exporter{
		db:       db,
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucket,
	}, nil
}

// ExportDay uploads every category that has events recorded on the given day.
func (e *Exporter) ExportDay(day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var categories []string
	err := e.db.Model(&model.AnalyticsEvent{}).
		Where("recorded_at >= ? AND recorded_at < ?", start, end).
		Distinct("category").
		Pluck("category", &categories).Error
	if err != nil {
		return err
	}

	for _, category := range categories {
		var events []model.AnalyticsEvent
		err := e.db.Where("category = ? AND recorded_at >= ? AND recorded_at < ?", category, start, end).
			Order("recorded_at ASC").
			Find(&events).Error
		if err != nil {
			return err
		}

		key := fmt.Sprintf("%s/%s.csv", slug.Make(category), start.Format("2006-01-02"))
		body := buildCSV(events)

		_, err = e.s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(e.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("text/csv"),
		})
		if err != nil {
			return fmt.Errorf("could not upload %s: %v", key, err)
		}

		log.Printf("Exported %d %s events to s3://%s/%s", len(events), category, e.bucket, key)
	}

	return nil
}

func buildCSV(events []model.AnalyticsEvent) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"id", "category", "email", "payload", "recorded_at"})
	for _, ev := range events {
		w.Write([]string{
			strconv.FormatUint(uint64(ev.ID), 10),
			ev.Category,
			ev.Email,
			string(ev.Payload),
			ev.RecordedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()

	return buf.Bytes()
}
