package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunthewhat/academic-cert-api/api"
	auth_controller "github.com/sunthewhat/academic-cert-api/api/controllers/auth"
	certificate_controller "github.com/sunthewhat/academic-cert-api/api/controllers/certificate"
	verification_controller "github.com/sunthewhat/academic-cert-api/api/controllers/verification"
	batchmodel "github.com/sunthewhat/academic-cert-api/api/model/batchModel"
	certificatemodel "github.com/sunthewhat/academic-cert-api/api/model/certificateModel"
	institutionmodel "github.com/sunthewhat/academic-cert-api/api/model/institutionModel"
	studentmodel "github.com/sunthewhat/academic-cert-api/api/model/studentModel"
	verificationmodel "github.com/sunthewhat/academic-cert-api/api/model/verificationModel"
	"github.com/sunthewhat/academic-cert-api/api/routes"
	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/common/config"
	"github.com/sunthewhat/academic-cert-api/common/gorm"
	"github.com/sunthewhat/academic-cert-api/common/mongo"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/internal/issuance"
	"github.com/sunthewhat/academic-cert-api/internal/storage"
	"github.com/sunthewhat/academic-cert-api/internal/verification"
)

const queueSize = 64

func main() {
	configPath := flag.String("config", "config.yml", "Path to the configuration file")
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isPullDB := flag.Bool("PullDB", false, "Run database pulling")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()
	config.LoadConfig(*configPath)

	if *isPushDB || *isPullDB {
		if *isPullDB {
			gorm.Pull_db()
		}
		if *isPushDB {
			gorm.Push_db()
		}
		if !*isRunAfter {
			return
		}
	}
	gorm.InitGorm()
	mongo.InitMongo()

	cfg := common.Config
	store := initStore()
	publisher := initPublisher()
	defer publisher.Close()

	opts := []issuance.Option{issuance.WithPublisher(publisher)}
	if cfg.MailOn() {
		util.InitDialer()
		opts = append(opts, issuance.WithNotifier(util.NewIssueMailer(common.Dialer, *cfg.MailUser, *cfg.BaseURL, store)))
	}
	orchestrator := issuance.NewOrchestrator(common.Gorm, store, *cfg.BaseURL, opts...)

	batchRepo := batchmodel.NewBatchRepository(common.Mongo)
	pool := issuance.NewPool(orchestrator, batchRepo, cfg.Workers(), queueSize)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)
	defer pool.Stop()

	if err := os.MkdirAll(*cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "dir", *cfg.UploadDir, "error", err)
		os.Exit(1)
	}
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	util.StartUploadCleanupJob(*cfg.UploadDir, time.Duration(cfg.RetentionDays())*24*time.Hour, stopCleanup)

	certRepo := certificatemodel.NewCertificateRepository(common.Gorm)
	institutionRepo := institutionmodel.NewInstitutionRepository(common.Gorm)
	studentRepo := studentmodel.NewStudentRepository(common.Gorm)
	logRepo := verificationmodel.NewVerificationRepository(common.Gorm)

	secret := []byte(*cfg.JWTSecret)
	ctrls := routes.Controllers{
		Auth: auth_controller.NewAuthController(institutionRepo, studentRepo, secret),
		Certificate: certificate_controller.NewCertificateController(certificate_controller.Deps{
			CertRepo:        certRepo,
			InstitutionRepo: institutionRepo,
			BatchRepo:       batchRepo,
			Issuer:          orchestrator,
			Queue:           pool,
			Store:           store,
			Publisher:       publisher,
			UploadDir:       *cfg.UploadDir,
			AsyncThreshold:  cfg.AsyncThreshold(),
		}),
		Verification: verification_controller.NewVerificationController(
			verification.NewService(certRepo, logRepo, publisher),
		),
	}

	app := api.NewApp(cfg, ctrls)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	api.InitFiber(app, *cfg.Port)
}

func initStore() storage.Store {
	cfg := common.Config
	if cfg.UsesMinIO() {
		if err := util.InitMinIO(); err != nil {
			slog.Error("Failed to initialize MinIO", "error", err)
			os.Exit(1)
		}
		slog.Info("Storing certificates in MinIO", "bucket", *cfg.BucketCertificate)
		return storage.NewMinioStore(common.MinIOClient, *cfg.BucketCertificate)
	}

	store, err := storage.NewLocalStore(*cfg.CertificateDir)
	if err != nil {
		slog.Error("Failed to prepare certificate directory", "dir", *cfg.CertificateDir, "error", err)
		os.Exit(1)
	}
	return store
}

func initPublisher() events.Publisher {
	cfg := common.Config
	if cfg.RabbitMQURL == nil || *cfg.RabbitMQURL == "" {
		return events.Nop{}
	}
	exchange := "certificates"
	if cfg.RabbitMQExchange != nil {
		exchange = *cfg.RabbitMQExchange
	}
	publisher, err := events.NewRabbitPublisher(*cfg.RabbitMQURL, exchange)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, certificate events disabled", "error", err)
		return events.Nop{}
	}
	return publisher
}
