package gorm

import (
	"log/slog"
	"os"

	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gen"
)

// Pull_db generates typed query helpers for the relational models into
// ./type/shared/query.
func Pull_db() {
	db, err := Open(common.Config)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	g := gen.NewGenerator(
		gen.Config{
			OutPath: "./type/shared/query",
			Mode:    gen.WithoutContext | gen.WithDefaultQuery,
		},
	)

	g.UseDB(db)

	g.ApplyBasic(model.Tables()...)

	g.Execute()

	slog.Info("Query generation completed", "out", "./type/shared/query")
}
