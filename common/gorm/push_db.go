package gorm

import (
	"log/slog"
	"os"

	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

func Push_db() {
	db, err := Open(common.Config)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(model.Tables()...); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("Database migration completed successfully", "tables", len(model.Tables()))
}
