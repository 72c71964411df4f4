package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/type/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

func InitGorm() {
	db, err := Open(common.Config)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("GORM Connected!", "replicas", len(common.Config.PostgresReplicas))

	common.Gorm = db
}

// Open connects to the primary and registers any configured read replicas.
// Writes and transactions always go to the primary.
func Open(config *shared.Config) (*gorm.DB, error) {
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
	)

	db, err := gorm.Open(dialector(*config.Postgres), &gorm.Config{
		Logger: lg,
	})
	if err != nil {
		return nil, err
	}

	var replicas []gorm.Dialector
	for _, dsn := range config.PostgresReplicas {
		if dsn != nil && *dsn != "" {
			replicas = append(replicas, dialector(*dsn))
		}
	}
	if len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetConnMaxIdleTime(time.Hour).
			SetMaxOpenConns(20)
		if err := db.Use(resolver); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func dialector(dsn string) gorm.Dialector {
	return postgres.New(
		postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		},
	)
}
