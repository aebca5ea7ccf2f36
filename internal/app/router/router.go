package router

import (
	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/app/handlers"
	"pesanet/kopa_lending/internal/app/middleware"
	"pesanet/kopa_lending/internal/pkg/kafka/producer"
	kafkaretry "pesanet/kopa_lending/internal/pkg/kafka/retry"
	"pesanet/kopa_lending/internal/pkg/notification"
	"pesanet/kopa_lending/internal/pkg/pubsub"
	"pesanet/kopa_lending/internal/pkg/remote"
	"pesanet/kopa_lending/internal/pkg/services"
	"pesanet/kopa_lending/internal/pkg/store"
	"pesanet/kopa_lending/internal/pkg/store/repository"
	"pesanet/kopa_lending/internal/pkg/usecases"
)

// SetupRouter wires the whole service by hand: stores, remote clients,
// services, use cases, handlers.
func SetupRouter(
	redisClient *redis.Client,
	kafkaProducer producer.EventPublisher,
	pubsubPublisher *pubsub.Publisher,
	gcsClient *storage.Client,
) *gin.Engine {

	r := gin.Default()
	meter := otel.Meter(configs.SERVICE_NAME)
	r.Use(otelgin.Middleware(configs.SERVICE_NAME))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	// Redis backed stores
	redisAdapter := repository.NewRedisStoreAdapter(redisClient)
	tokenStorage := repository.NewTokenStorage(redisAdapter)
	profileCache := repository.NewProfileCache(redisAdapter)
	preferencesStore := repository.NewPreferencesStore(redisAdapter)

	// Mongo backed stores
	loansRepo := store.NewLoansRepository()
	paymentsRepo := store.NewPaymentsRepository()
	cashDraftsRepo := store.NewCashDraftsRepository()
	payGoDraftsRepo := store.NewPayGoDraftsRepository()
	formDataRepo := store.NewFormDataRepository()
	pendingPaymentsRepo := store.NewPendingPaymentsRepository()
	statusEventsRepo := store.NewStatusEventsRepository()
	dashboardRepo := store.NewPaymentDashboardRepository()
	syncGate := store.NewSyncGate()

	// Remote clients
	authAPI := remote.NewAuthAPI()
	loanAPI := remote.NewLoanAPI()
	paymentAPI := remote.NewPaymentAPI()
	profileAPI := remote.NewProfileAPI()

	// Messaging
	notificationService := notification.NewNotificationService(pubsubPublisher)

	// Services
	validationService := services.NewValidationService()
	authService := services.NewAuthService(authAPI, tokenStorage, profileCache)
	loanService := services.NewLoanService(loanAPI, loansRepo, cashDraftsRepo, payGoDraftsRepo,
		formDataRepo, syncGate, statusEventsRepo, validationService, kafkaProducer, notificationService)
	paymentService := services.NewPaymentService(paymentAPI, paymentsRepo, loansRepo, pendingPaymentsRepo,
		dashboardRepo, syncGate, statusEventsRepo, validationService, kafkaProducer, notificationService)

	gcsStorage := services.NewGCSStorage(gcsClient)
	sftpService := services.NewSftpService()
	profileService := services.NewProfileService(profileAPI, profileCache, preferencesStore, gcsStorage)
	reportService := services.NewReportService(paymentsRepo)
	reportExportService := services.NewReportExportService(gcsStorage, sftpService)

	// Use cases
	loanHistoryUseCase := usecases.NewGetLoanHistoryUseCase(loanService)
	submitCashUseCase := usecases.NewSubmitCashLoanUseCase(loanService, profileService)
	submitPayGoUseCase := usecases.NewSubmitPayGoLoanUseCase(loanService, profileService)
	generateReportUseCase := usecases.NewGeneratePaymentReportUseCase(reportService, reportExportService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	loanHandler := handlers.NewLoanHandler(loanService, loanHistoryUseCase, submitCashUseCase, submitPayGoUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	profileHandler := handlers.NewProfileHandler(profileService)
	reportHandler := handlers.NewReportHandler(generateReportUseCase)

	retryService := kafkaretry.NewRetryService(statusEventsRepo, kafkaProducer, 4)
	eventRetryHandler := handlers.NewEventRetryHandler(retryService)

	// Auth
	auth := r.Group("/api/auth")
	{
		auth.POST("/send-otp", authHandler.SendOtp)
		auth.POST("/verify-otp", authHandler.VerifyOtp)
		auth.POST("/set-pin", authHandler.SetPin)
		auth.POST("/login", authHandler.Login)
		auth.POST("/clients", authHandler.CreateClient)
		auth.POST("/:userId/refresh", authHandler.RefreshToken)
		auth.POST("/:userId/logout", authHandler.Logout)
		auth.GET("/:userId/session", authHandler.SessionStatus)
		auth.PUT("/:userId/pin", authHandler.UpdatePin)
		auth.POST("/:userId/mobile/change/start", authHandler.StartMobileChange)
		auth.POST("/:userId/mobile/change/verify", authHandler.VerifyMobileChange)
		auth.POST("/:userId/mobile/change/confirm", authHandler.ConfirmMobileChange)
	}

	// Loans and applications
	loans := r.Group("/api/loans")
	{
		loans.GET("/cash/form-data", loanHandler.CashLoanFormData)
		loans.POST("/cash/calculate-terms", loanHandler.CalculateCashLoanTerms)
		loans.POST("/paygo/calculate-terms", loanHandler.CalculatePayGoTerms)
		loans.POST("/cash/:userId/apply", loanHandler.SubmitCashLoanApplication)
		loans.POST("/paygo/:userId/apply", loanHandler.SubmitPayGoLoanApplication)
		loans.PUT("/cash/:userId/draft", loanHandler.SaveCashDraft)
		loans.GET("/cash/:userId/draft", loanHandler.CashDraft)
		loans.DELETE("/cash/:userId/draft", loanHandler.DeleteCashDraft)
		loans.PUT("/paygo/:userId/draft", loanHandler.SavePayGoDraft)
		loans.GET("/paygo/:userId/draft", loanHandler.PayGoDraft)
		loans.DELETE("/paygo/:userId/draft", loanHandler.DeletePayGoDraft)
		loans.GET("/user/:userId", loanHandler.Loans)
		loans.GET("/user/:userId/active", loanHandler.ActiveLoans)
		loans.GET("/user/:userId/history", loanHandler.LoanHistory)
		loans.GET("/:loanId", loanHandler.LoanDetails)
		loans.GET("/applications/:applicationId/status", loanHandler.ApplicationStatus)
	}

	// Payments
	payments := r.Group("/api/payments")
	{
		payments.POST("/user/:userId", paymentHandler.ProcessPayment)
		payments.GET("/user/:userId", paymentHandler.Payments)
		payments.GET("/user/:userId/dashboard", paymentHandler.PaymentDashboard)
		payments.GET("/loan/:loanId", paymentHandler.PaymentsForLoan)
		payments.GET("/:paymentId/status", paymentHandler.PaymentStatus)
		payments.POST("/user/:userId/payment/:paymentId/cancel", paymentHandler.CancelPayment)
		payments.POST("/user/:userId/payment/:paymentId/retry", paymentHandler.RetryPayment)
		payments.GET("/loans/:loanId/early-payoff/check-eligibility", paymentHandler.CheckEarlyPayoffEligibility)
		payments.POST("/loans/:loanId/early-payoff/calculate", paymentHandler.CalculateEarlyPayoff)
		payments.POST("/user/:userId/loans/:loanId/early-payoff/process", paymentHandler.ProcessEarlyPayoff)
	}

	// Profile
	profile := r.Group("/api/profile")
	{
		profile.GET("/:userId", profileHandler.Profile)
		profile.PUT("/:userId", profileHandler.UpdateProfile)
		profile.POST("/:userId/documents", profileHandler.UploadDocument)
		profile.GET("/:userId/completion", profileHandler.ProfileCompletion)
		profile.GET("/:userId/preferences", profileHandler.Preferences)
		profile.PUT("/:userId/preferences", profileHandler.SavePreferences)
	}

	// Reports and operations
	r.POST("/api/reports/payments/:userId", reportHandler.GeneratePaymentReport)
	r.POST("/api/internal/events/retry", eventRetryHandler.RetryStatusEvents)

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"message": "Health Check"})
	})

	return r
}
