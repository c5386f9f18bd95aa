package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/udhay1409/vinushree-travels-api/internal/infra/cache"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/database"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/handlers"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/middleware"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/integration/imagekit"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/mail"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/queue"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	testimonialRepo := database.NewTestimonialRepository(db)
	smtpRepo := database.NewSMTPRepository(db)

	// 2. Dispatcher + queue (both optional; lead capture works without them)
	mailSender := mail.NewEmailSender()
	notifier := usecase.NewNotifyAdminUseCase(smtpRepo, mailSender)

	var producer usecase.LeadEventProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, envOr("RABBITMQ_PORT", "5672"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		worker := queue.NewWorker(rabbitMQ.Ch, notifier)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("RABBITMQ_HOST not set, notifications dispatch inline")
	}

	// 3. Redis dashboard cache (optional)
	var dashboardCache usecase.DashboardCache
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		dashboardCache = cache.NewDashboardCache(redisClient)
	}

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, producer, notifier)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, os.Getenv("APP_BASE_URL"))
	reviewUC := usecase.NewReviewUseCase(leadRepo, testimonialRepo)
	dashboardUC := usecase.NewDashboardUseCase(leadRepo, dashboardCache)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC)
	reviewHandler := handlers.NewReviewHandler(reviewUC)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialRepo)
	adminLeadHandler := handlers.NewAdminLeadHandler(leadRepo, updateLeadUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	settingsHandler := handlers.NewSettingsHandler(smtpRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn(rabbitMQ), redisClient)

	var uploadHandler *handlers.UploadHandler
	if key := os.Getenv("IMAGEKIT_PRIVATE_KEY"); key != "" {
		uploader := imagekit.NewClient(os.Getenv("IMAGEKIT_UPLOAD_URL"), key, os.Getenv("IMAGEKIT_FOLDER"))
		uploadHandler = handlers.NewUploadHandler(uploader)
	} else {
		uploadHandler = handlers.NewUploadHandler(nil)
	}

	adminAuth, err := middleware.NewAdminAuth(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatal(err)
	}

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public capture + review redemption
	r.Post("/api/leads", leadHandler.HandleLead)
	r.Post("/api/contact", leadHandler.HandleContact)
	r.Post("/api/quotation", leadHandler.HandleQuotation)
	r.Get("/api/review", reviewHandler.HandleGetContext)
	r.Post("/api/review", reviewHandler.HandleSubmit)
	r.Get("/api/testimonials", testimonialHandler.HandleList)

	// Admin
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuth.Middleware)
		r.Get("/leads", adminLeadHandler.HandleList)
		r.Get("/leads/{id}", adminLeadHandler.HandleGet)
		r.Put("/leads/{id}", adminLeadHandler.HandleUpdate)
		r.Get("/dashboard", dashboardHandler.Handle)
		r.Get("/settings/smtp", settingsHandler.HandleGetSMTP)
		r.Put("/settings/smtp", settingsHandler.HandleSaveSMTP)
		r.Post("/upload", uploadHandler.Handle)
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Vinushree Travels API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func rabbitConn(r *queue.RabbitMQ) *amqp091.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
