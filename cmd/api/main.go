package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicaustral/clinica-api/internal/config"
	"github.com/clinicaustral/clinica-api/internal/handler"
	authHandler "github.com/clinicaustral/clinica-api/internal/handler/auth"
	dashboardHandler "github.com/clinicaustral/clinica-api/internal/handler/dashboard"
	disponibilidadHandler "github.com/clinicaustral/clinica-api/internal/handler/disponibilidad"
	especialidadHandler "github.com/clinicaustral/clinica-api/internal/handler/especialidad"
	fichaHandler "github.com/clinicaustral/clinica-api/internal/handler/ficha"
	medicoHandler "github.com/clinicaustral/clinica-api/internal/handler/medico"
	pacienteHandler "github.com/clinicaustral/clinica-api/internal/handler/paciente"
	publicHandler "github.com/clinicaustral/clinica-api/internal/handler/public"
	recepcionistaHandler "github.com/clinicaustral/clinica-api/internal/handler/recepcionista"
	reservaHandler "github.com/clinicaustral/clinica-api/internal/handler/reserva"
	"github.com/clinicaustral/clinica-api/internal/middleware"
	"github.com/clinicaustral/clinica-api/internal/repository/postgres"
	"github.com/clinicaustral/clinica-api/internal/router"
	authService "github.com/clinicaustral/clinica-api/internal/service/auth"
	dashboardService "github.com/clinicaustral/clinica-api/internal/service/dashboard"
	disponibilidadService "github.com/clinicaustral/clinica-api/internal/service/disponibilidad"
	especialidadService "github.com/clinicaustral/clinica-api/internal/service/especialidad"
	fichaService "github.com/clinicaustral/clinica-api/internal/service/ficha"
	medicoService "github.com/clinicaustral/clinica-api/internal/service/medico"
	notificationService "github.com/clinicaustral/clinica-api/internal/service/notification"
	pacienteService "github.com/clinicaustral/clinica-api/internal/service/paciente"
	recepcionistaService "github.com/clinicaustral/clinica-api/internal/service/recepcionista"
	reservaService "github.com/clinicaustral/clinica-api/internal/service/reserva"
	"github.com/clinicaustral/clinica-api/pkg/auth"
	"github.com/clinicaustral/clinica-api/pkg/event"
	"github.com/clinicaustral/clinica-api/pkg/logger"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	usuarioRepo := postgres.NewUsuarioRepository(db)
	medicoRepo := postgres.NewMedicoRepository(db)
	recepcionistaRepo := postgres.NewRecepcionistaRepository(db)
	pacienteRepo := postgres.NewPacienteRepository(db)
	especialidadRepo := postgres.NewEspecialidadRepository(db)
	disponibilidadRepo := postgres.NewDisponibilidadRepository(db)
	reservaRepo := postgres.NewReservaRepository(db)
	fichaRepo := postgres.NewFichaMedicaRepository(db)

	// Notification side-channel: in-process cache by default, redis
	// when several instances share a clinic.
	store, err := buildNotificationStore(cfg)
	if err != nil {
		log.Fatal(err, "failed to initialize notification store")
	}
	notificationSvc := notificationService.NewService(store, cfg.Notifications.TTL())

	emitter := event.NewEmitter()
	emitter.Register(notificationSvc)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authSvc := authService.NewService(usuarioRepo, jwtSvc, cfg.JWT.Expiry())
	medicoSvc := medicoService.NewService(medicoRepo, usuarioRepo, especialidadRepo)
	recepcionistaSvc := recepcionistaService.NewService(recepcionistaRepo, usuarioRepo)
	pacienteSvc := pacienteService.NewService(pacienteRepo)
	especialidadSvc := especialidadService.NewService(especialidadRepo)
	disponibilidadSvc := disponibilidadService.NewService(disponibilidadRepo)
	reservaSvc := reservaService.NewService(reservaRepo, pacienteRepo, emitter)
	fichaSvc := fichaService.NewService(fichaRepo, reservaRepo)
	dashboardSvc := dashboardService.NewService(medicoRepo, recepcionistaRepo, pacienteRepo, reservaRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	publicH := publicHandler.NewHandler(medicoSvc, disponibilidadSvc)
	medicoH := medicoHandler.NewHandler(medicoSvc)
	recepcionistaH := recepcionistaHandler.NewHandler(recepcionistaSvc)
	especialidadH := especialidadHandler.NewHandler(especialidadSvc)
	pacienteH := pacienteHandler.NewHandler(pacienteSvc)
	reservaH := reservaHandler.NewHandler(reservaSvc)
	disponibilidadH := disponibilidadHandler.NewHandler(disponibilidadSvc, medicoSvc)
	fichaH := fichaHandler.NewHandler(fichaSvc, medicoSvc)
	dashboardH := dashboardHandler.NewHandler(dashboardSvc, medicoSvc, reservaSvc, notificationSvc)

	router.RegisterValidators()

	r := router.NewRouter(
		authMiddleware,
		authH,
		publicH,
		medicoH,
		recepcionistaH,
		especialidadH,
		pacienteH,
		reservaH,
		disponibilidadH,
		fichaH,
		dashboardH,
		h,
		router.RouterConfig{
			RateLimit:     float64(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "clinica",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}

func buildNotificationStore(cfg *config.Config) (notificationService.Store, error) {
	if cfg.Notifications.Backend == "redis" {
		return notificationService.NewRedisStore(cfg.Redis.URL)
	}
	return notificationService.NewMemoryStore(cfg.Notifications.TTL()), nil
}
