package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"wellnest_backend/internal/controller"
	"wellnest_backend/internal/middleware"
	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/config"
	"wellnest_backend/pkg/cron"
	"wellnest_backend/pkg/database"
	"wellnest_backend/pkg/email"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/promo"
	"wellnest_backend/pkg/utils/jwt"
)

func setupRoutes(app *fiber.App, signup *controller.SignupController, waitlist *controller.WaitlistController,
	plan *controller.PlanController, webhooks *controller.WebhookController, admin *controller.AdminController) {
	api := app.Group("/api")

	// Conversion paths
	api.Post("/create-ambassador-setup", signup.CreateAmbassadorSetup)
	api.Post("/create-feedback-subscription", signup.CreateFeedbackSubscription)
	api.Post("/create-waitlist", waitlist.CreateWaitlist)

	// Stripe surface
	stripeGroup := api.Group("/stripe")
	stripeGroup.Get("/plans", plan.ListPlans)
	stripeGroup.Post("/create-checkout-session", plan.CreateCheckoutSession)
	stripeGroup.Post("/webhook", webhooks.HandleStripeWebhook)

	// Admin dashboard
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", admin.Login)
	adminProtected := adminGroup.Use(middleware.AdminAuth())
	adminProtected.Get("/waitlist", admin.GetWaitlist)
	adminProtected.Get("/analytics", admin.GetAnalyticsStats)
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.Admin.JWTSecret)

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, lifecycle emails disabled")
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.Member{},
		&model.Subscription{},
		&model.WaitlistEntry{},
		&model.ProcessedWebhookEvent{},
		&model.AnalyticsEvent{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}
	db := database.GetDB()

	payments := payment.New(payment.Config{
		SecretKey:         cfg.Stripe.SecretKey,
		WebhookSecret:     cfg.Stripe.WebhookSecret,
		PublishableKey:    cfg.Stripe.PublishableKey,
		AmbassadorPriceID: cfg.Stripe.AmbassadorPriceID,
		FeedbackPriceID:   cfg.Stripe.FeedbackPriceID,
		RegularPriceID:    cfg.Stripe.RegularPriceID,
	})
	if !payments.Enabled() {
		log.Println("STRIPE_SECRET_KEY not set, running in demo mode: no live billing")
	}

	sink := analytics.NewSink(db)
	engine := promo.NewEngine(db, payments)

	var exporter *analytics.Exporter
	if cfg.Analytics.Bucket != "" {
		exporter, err = analytics.NewExporter(db, cfg.Analytics.Bucket, cfg.Analytics.Region)
		if err != nil {
			log.Printf("Could not initialize analytics exporter: %v", err)
		}
	}

	signupCtrl := controller.NewSignupController(db, payments, sink)
	waitlistCtrl := controller.NewWaitlistController(db, sink)
	planCtrl := controller.NewPlanController(payments, sink, cfg.BaseURL)
	webhookCtrl := controller.NewWebhookController(db, payments, engine, sink)
	adminCtrl := controller.NewAdminController(db, sink, cfg.Admin.PasswordHash)

	cron.InitTrialReminderCron()
	cron.InitAnalyticsExportCron(exporter)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, signupCtrl, waitlistCtrl, planCtrl, webhookCtrl, adminCtrl)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
