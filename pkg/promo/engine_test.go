package promo

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/plans"
)

func openEngineTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL must be set")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Member{}, &model.Subscription{}); err != nil {
		t.Fatalf("could not migrate test tables: %v", err)
	}
	return db
}

func TestDecrementSkipsWhenCounterMoved(t *testing.T) {
	db := openEngineTestDB(t)
	engine := NewEngine(db, payment.New(payment.Config{}))

	sub := model.Subscription{
		PlanType:             string(plans.Feedback),
		StripeSubID:          fmt.Sprintf("sub_guard_%d", time.Now().UnixNano()),
		PromoMonthsRemaining: 3,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("could not seed subscription: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&sub) })

	// A concurrent delivery moved the counter after this one read the row.
	stale := sub
	if err := db.Model(&model.Subscription{}).
		Where("id = ?", sub.ID).
		Update("promo_months_remaining", 2).Error; err != nil {
		t.Fatalf("could not move counter: %v", err)
	}

	if err := engine.decrement(&stale); err != nil {
		t.Fatalf("decrement returned error: %v", err)
	}

	var got model.Subscription
	if err := db.First(&got, sub.ID).Error; err != nil {
		t.Fatalf("could not reload subscription: %v", err)
	}
	if got.PromoMonthsRemaining != 2 {
		t.Fatalf("counter = %d after skipped decrement, want 2", got.PromoMonthsRemaining)
	}
}

func TestHandlePaymentSucceededUnknownSubscription(t *testing.T) {
	db := openEngineTestDB(t)
	engine := NewEngine(db, payment.New(payment.Config{}))

	if err := engine.HandlePaymentSucceeded(fmt.Sprintf("sub_never_seen_%d", time.Now().UnixNano())); err != nil {
		t.Fatalf("unknown subscription must be skipped, got error: %v", err)
	}
}

func TestHandlePaymentSucceededSurfacesLookupErrors(t *testing.T) {
	db := openEngineTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("could not get db handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("could not close db: %v", err)
	}

	// A failed lookup is not an unknown subscription: it must bubble up so
	// the delivery is not acknowledged with the transition lost.
	engine := NewEngine(db, payment.New(payment.Config{}))
	if err := engine.HandlePaymentSucceeded("sub_any"); err == nil {
		t.Fatal("expected an error from a failed subscription lookup, got nil")
	}
}
