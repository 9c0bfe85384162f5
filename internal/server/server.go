package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/livestockhub/internal/config"
	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/jobs"
	"anoa.com/livestockhub/internal/modules/access"
	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/pkg/logger"
	"anoa.com/livestockhub/pkg/storage"

	adminHttp "anoa.com/livestockhub/internal/modules/admin/delivery/http"
	adminService "anoa.com/livestockhub/internal/modules/admin/service"

	aichatHttp "anoa.com/livestockhub/internal/modules/aichat/delivery/http"
	aichatService "anoa.com/livestockhub/internal/modules/aichat/service"

	animalHttp "anoa.com/livestockhub/internal/modules/animal/delivery/http"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"

	auditRepo "anoa.com/livestockhub/internal/modules/audit/repository"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"

	breedingHttp "anoa.com/livestockhub/internal/modules/breeding/delivery/http"
	breedingRepo "anoa.com/livestockhub/internal/modules/breeding/repository"
	breedingService "anoa.com/livestockhub/internal/modules/breeding/service"

	contentHttp "anoa.com/livestockhub/internal/modules/content/delivery/http"
	contentRepo "anoa.com/livestockhub/internal/modules/content/repository"
	contentService "anoa.com/livestockhub/internal/modules/content/service"

	coordinatorHttp "anoa.com/livestockhub/internal/modules/coordinator/delivery/http"
	coordinatorRepo "anoa.com/livestockhub/internal/modules/coordinator/repository"
	coordinatorService "anoa.com/livestockhub/internal/modules/coordinator/service"

	dashboardHttp "anoa.com/livestockhub/internal/modules/dashboard/delivery/http"
	dashboardService "anoa.com/livestockhub/internal/modules/dashboard/service"

	feedingHttp "anoa.com/livestockhub/internal/modules/feeding/delivery/http"
	feedingRepo "anoa.com/livestockhub/internal/modules/feeding/repository"
	feedingService "anoa.com/livestockhub/internal/modules/feeding/service"

	healthHttp "anoa.com/livestockhub/internal/modules/health/delivery/http"
	healthRepo "anoa.com/livestockhub/internal/modules/health/repository"
	healthService "anoa.com/livestockhub/internal/modules/health/service"

	helpdeskHttp "anoa.com/livestockhub/internal/modules/helpdesk/delivery/http"
	helpdeskRepo "anoa.com/livestockhub/internal/modules/helpdesk/repository"
	helpdeskService "anoa.com/livestockhub/internal/modules/helpdesk/service"

	impersonationHttp "anoa.com/livestockhub/internal/modules/impersonation/delivery/http"
	impersonationRepo "anoa.com/livestockhub/internal/modules/impersonation/repository"
	impersonationService "anoa.com/livestockhub/internal/modules/impersonation/service"

	marketplaceHttp "anoa.com/livestockhub/internal/modules/marketplace/delivery/http"
	marketplaceRepo "anoa.com/livestockhub/internal/modules/marketplace/repository"
	marketplaceService "anoa.com/livestockhub/internal/modules/marketplace/service"

	messagingHttp "anoa.com/livestockhub/internal/modules/messaging/delivery/http"
	messagingRepo "anoa.com/livestockhub/internal/modules/messaging/repository"
	messagingService "anoa.com/livestockhub/internal/modules/messaging/service"

	onboardingHttp "anoa.com/livestockhub/internal/modules/onboarding/delivery/http"
	onboardingService "anoa.com/livestockhub/internal/modules/onboarding/service"

	profileHttp "anoa.com/livestockhub/internal/modules/profile/delivery/http"
	profileRepo "anoa.com/livestockhub/internal/modules/profile/repository"
	profileService "anoa.com/livestockhub/internal/modules/profile/service"

	userHttp "anoa.com/livestockhub/internal/modules/user/delivery/http"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	userService "anoa.com/livestockhub/internal/modules/user/service"

	vetHttp "anoa.com/livestockhub/internal/modules/vet/delivery/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	http      *http.Server
	scheduler *jobs.Scheduler
	log       *zap.Logger
	closers   []func()
}

// NewServer wires every module. redisClient may be nil; the optional
// integrations (meilisearch, kafka, gemini, uploads) are enabled by config.
func NewServer(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log, scheduler: jobs.NewScheduler(log.Named("jobs"))}

	imageStorage, err := storage.New(ctx, storage.Options{
		Driver:              cfg.StorageDriver,
		CloudinaryURL:       cfg.CloudinaryURL,
		CloudinaryCloudName: cfg.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
		UploadFolder:        cfg.CloudinaryUploadFolder,
		S3Bucket:            cfg.S3Bucket,
		S3Region:            cfg.S3Region,
		S3Endpoint:          cfg.S3Endpoint,
		S3PublicBaseURL:     cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	if imageStorage == nil {
		log.Warn("no upload storage configured, uploads are disabled")
	}

	var auditPublisher auditService.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := auditService.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		auditPublisher = kafkaPublisher
		s.closers = append(s.closers, func() { _ = kafkaPublisher.Close() })
	}

	var listingIndex marketplaceService.ListingIndex
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		listingIndex = marketplaceService.NewMeiliListingIndex(meiliClient, log.Named("search"))
	}

	var chatProvider aichatService.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := aichatService.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("gemini unavailable, using canned replies", zap.Error(err))
		} else {
			chatProvider = gemini
			s.closers = append(s.closers, gemini.Close)
		}
	}

	// Session, roles and gates
	issuer := session.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	sessionStore := session.NewStore(redisClient)

	userRepository := userRepo.NewUserRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)

	roleResolver := access.NewRoleResolver(userRepository, redisClient, 5*time.Minute, log.Named("access"))
	gate := access.NewGate(cfg.IsProduction(), profileRepository)
	mw := access.NewMiddleware(issuer, sessionStore, roleResolver, profileRepository, log.Named("access"))
	accessHandler := access.NewHandler(gate, mw)

	auditSvc := auditService.NewAuditService(auditRepo.NewAuditRepository(db), auditPublisher, log.Named("audit"))

	authSvc := userService.NewAuthService(userRepository, issuer, sessionStore, log.Named("auth"), userService.Options{
		DefaultRole:        entity.Role(cfg.DefaultRole),
		Production:         cfg.IsProduction(),
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GoogleRedirectURL:  cfg.GoogleRedirectURL,
	})
	authHandler := userHttp.NewAuthHandler(authSvc)

	impersonationSvc := impersonationService.NewImpersonationService(impersonationRepo.NewImpersonationRepository(db), authSvc, auditSvc, sessionStore, log.Named("impersonation"))
	impersonationHandler := impersonationHttp.NewImpersonationHandler(impersonationSvc)

	profileHandler := profileHttp.NewProfileHandler(profileService.NewProfileService(userRepository, profileRepository, imageStorage))
	onboardingHandler := onboardingHttp.NewOnboardingHandler(onboardingService.NewOnboardingService(profileRepository, log.Named("onboarding")))

	// Farm records
	animalRepository := animalRepo.NewAnimalRepository(db)
	animalSvc := animalService.NewAnimalService(animalRepository, imageStorage, log.Named("animal"))
	animalHandler := animalHttp.NewAnimalHandler(animalSvc)

	healthRepository := healthRepo.NewHealthRepository(db)
	healthSvc := healthService.NewHealthService(healthRepository, animalRepository, log.Named("health"))
	healthHandler := healthHttp.NewHealthHandler(healthSvc)
	vetHandler := vetHttp.NewVetHandler(healthSvc)

	breedingSvc := breedingService.NewBreedingService(breedingRepo.NewBreedingRepository(db), animalRepository)
	breedingHandler := breedingHttp.NewBreedingHandler(breedingSvc)

	feedingSvc := feedingService.NewFeedingService(feedingRepo.NewFeedingRepository(db), animalRepository)
	feedingHandler := feedingHttp.NewFeedingHandler(feedingSvc)

	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardService.NewDashboardService(animalRepository, healthSvc, feedingSvc, breedingSvc))

	// Community
	marketplaceSvc := marketplaceService.NewMarketplaceService(
		marketplaceRepo.NewMarketplaceRepository(db),
		animalRepository,
		listingIndex,
		imageStorage,
		auditSvc,
		redisClient,
		marketplaceService.Options{EnquiryRateLimit: cfg.RateLimitEnquiry},
		log.Named("marketplace"),
	)
	marketplaceHandler := marketplaceHttp.NewMarketplaceHandler(marketplaceSvc)

	messagingSvc := messagingService.NewMessagingService(messagingRepo.NewMessagingRepository(db), userRepository, redisClient, log.Named("messaging"))
	messagingHandler := messagingHttp.NewMessagingHandler(messagingSvc, cfg.AllowedOrigins, log.Named("messaging"))

	helpdeskSvc := helpdeskService.NewHelpdeskService(helpdeskRepo.NewHelpdeskRepository(db), auditSvc, redisClient,
		helpdeskService.Options{TicketRateLimit: cfg.RateLimitTicket}, log.Named("helpdesk"))
	helpdeskHandler := helpdeskHttp.NewHelpdeskHandler(helpdeskSvc)

	chatHandler := aichatHttp.NewChatHandler(aichatService.NewChatService(chatProvider, redisClient, cfg.RateLimitChat, log.Named("aichat")))
	contentHandler := contentHttp.NewContentHandler(contentService.NewContentService(contentRepo.NewContentRepository(db)))

	// Oversight
	coordinatorHandler := coordinatorHttp.NewCoordinatorHandler(coordinatorService.NewCoordinatorService(
		coordinatorRepo.NewStatsRepository(db), userRepository, animalRepository, healthRepository, healthSvc,
	))
	adminHandler := adminHttp.NewAdminHandler(
		adminService.NewAdminService(userRepository, auditSvc, roleResolver, log.Named("admin")),
		marketplaceSvc,
		helpdeskSvc,
		auditSvc,
	)

	if err := s.scheduler.Register(jobs.NewSLASweep(helpdeskSvc, cfg.SLASweepSchedule, log.Named("jobs"))); err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(log.Named("http"), "/api/health", "/api/conversations/ws"))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/admin-login", authHandler.AdminLogin)
		auth.POST("/demo-login", authHandler.DemoLogin)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}
	api.GET("/routes/check", mw.OptionalAuth(), accessHandler.CheckRoute)

	// Signed in, onboarding not required
	authed := api.Group("")
	authed.Use(mw.RequireAuth())
	{
		authed.POST("/auth/signout", authHandler.SignOut)
		authed.GET("/auth/session", authHandler.Session)
		authed.POST("/impersonation/stop", impersonationHandler.Stop)

		authed.GET("/onboarding", onboardingHandler.Progress)
		authed.POST("/onboarding/:step", onboardingHandler.SubmitStep)

		authed.GET("/profile", profileHandler.GetCurrentProfile)
		authed.PUT("/profile", profileHandler.UpdateProfile)
		authed.POST("/profile/avatar", profileHandler.UploadAvatar)
	}

	// Signed in and past the onboarding gate
	gated := authed.Group("")
	gated.Use(mw.RequireOnboarding())
	{
		gated.POST("/conversations", messagingHandler.StartConversation)
		gated.GET("/conversations", messagingHandler.ListConversations)
		gated.GET("/conversations/ws", messagingHandler.HandleWebSocket)
		gated.GET("/conversations/:id/messages", messagingHandler.ListMessages)
		gated.POST("/conversations/:id/messages", messagingHandler.SendMessage)

		gated.POST("/helpdesk/tickets", helpdeskHandler.Create)
		gated.GET("/helpdesk/tickets", helpdeskHandler.ListMine)
		gated.GET("/helpdesk/tickets/:id", helpdeskHandler.Get)
		gated.POST("/helpdesk/tickets/:id/responses", helpdeskHandler.Respond)

		gated.GET("/content", contentHandler.ListItems)
		gated.GET("/content/:id", contentHandler.GetItem)
		gated.GET("/schemes", contentHandler.ListSchemes)
		gated.GET("/schemes/:id", contentHandler.GetScheme)
	}

	farm := gated.Group("")
	farm.Use(mw.RequireFeature(access.FeatureFarm))
	{
		farm.GET("/dashboard", dashboardHandler.Summary)

		farm.GET("/animals", animalHandler.List)
		farm.POST("/animals", animalHandler.Create)
		farm.GET("/animals/:id", animalHandler.Get)
		farm.PUT("/animals/:id", animalHandler.Update)
		farm.DELETE("/animals/:id", animalHandler.Delete)
		farm.POST("/animals/:id/photo", animalHandler.UploadPhoto)

		farm.GET("/animals/:id/health-records", healthHandler.ListRecords)
		farm.POST("/animals/:id/health-records", healthHandler.AddRecord)
		farm.GET("/animals/:id/vaccinations", healthHandler.ListVaccinations)
		farm.POST("/animals/:id/vaccinations", healthHandler.AddVaccination)
		farm.GET("/vaccinations/upcoming", healthHandler.UpcomingVaccinations)

		farm.GET("/animals/:id/breeding", breedingHandler.List)
		farm.POST("/animals/:id/breeding", breedingHandler.Add)
		farm.PATCH("/breeding/:id/outcome", breedingHandler.RecordOutcome)
		farm.GET("/breeding/upcoming", breedingHandler.Upcoming)

		farm.GET("/feeding/schedules", feedingHandler.ListSchedules)
		farm.POST("/feeding/schedules", feedingHandler.CreateSchedule)
		farm.PUT("/feeding/schedules/:id", feedingHandler.UpdateSchedule)
		farm.DELETE("/feeding/schedules/:id", feedingHandler.DeleteSchedule)
		farm.GET("/feeding/inventory", feedingHandler.Inventory)
		farm.POST("/feeding/inventory", feedingHandler.CreateInventory)
		farm.PUT("/feeding/inventory/:id", feedingHandler.UpdateInventory)
		farm.DELETE("/feeding/inventory/:id", feedingHandler.DeleteInventory)

		farm.GET("/marketplace/listings", marketplaceHandler.Browse)
		farm.POST("/marketplace/listings", marketplaceHandler.Create)
		farm.GET("/marketplace/listings/:id", marketplaceHandler.Get)
		farm.PUT("/marketplace/listings/:id", marketplaceHandler.Update)
		farm.DELETE("/marketplace/listings/:id", marketplaceHandler.Delete)
		farm.POST("/marketplace/listings/:id/image", marketplaceHandler.UploadImage)
		farm.POST("/marketplace/listings/:id/enquiries", marketplaceHandler.Enquire)
		farm.GET("/marketplace/listings/:id/reviews", marketplaceHandler.ListReviews)
		farm.POST("/marketplace/listings/:id/reviews", marketplaceHandler.Review)
		farm.POST("/marketplace/listings/:id/reports", marketplaceHandler.Report)
		farm.GET("/marketplace/enquiries", marketplaceHandler.SellerEnquiries)

		farm.POST("/ai-chat", chatHandler.Ask)
	}

	vet := gated.Group("/vet")
	vet.Use(mw.RequireFeature(access.FeatureVet))
	{
		vet.GET("/cases", vetHandler.ListCases)
		vet.PATCH("/cases/:id", vetHandler.UpdateCase)
		vet.GET("/vaccinations/due", vetHandler.DueVaccinations)
		vet.POST("/animals/:id/health-records", vetHandler.AddRecord)
		vet.POST("/animals/:id/vaccinations", vetHandler.AddVaccination)
	}

	coordinator := gated.Group("/coordinator")
	coordinator.Use(mw.RequireFeature(access.FeatureCoordinator))
	{
		coordinator.GET("/overview", coordinatorHandler.Overview)
		coordinator.GET("/regions", coordinatorHandler.Regions)
		coordinator.GET("/vaccinations/due", vetHandler.DueVaccinations)
	}

	admin := authed.Group("/admin")
	admin.Use(mw.RequireFeature(access.FeatureAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/roles", adminHandler.GrantRole)
		admin.DELETE("/users/:id/roles", adminHandler.RevokeRole)
		admin.POST("/impersonation/start", impersonationHandler.Start)

		admin.GET("/reports", adminHandler.ListReports)
		admin.PATCH("/reports/:id", adminHandler.SetReportStatus)
		admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		admin.GET("/tickets", adminHandler.ListTickets)
		admin.PATCH("/tickets/:id", adminHandler.SetTicketStatus)

		admin.POST("/content", contentHandler.CreateItem)
		admin.PUT("/content/:id", contentHandler.UpdateItem)
		admin.DELETE("/content/:id", contentHandler.DeleteItem)
		admin.POST("/schemes", contentHandler.CreateScheme)
		admin.PUT("/schemes/:id", contentHandler.UpdateScheme)
		admin.DELETE("/schemes/:id", contentHandler.DeleteScheme)
	}

	s.engine = router
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.scheduler.Start()
	defer s.scheduler.Stop()
	defer s.close()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) close() {
	for _, fn := range s.closers {
		fn()
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
