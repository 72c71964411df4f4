package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/type/shared"
	"gopkg.in/yaml.v3"
)

// Read parses and validates the config file at path.
func Read(path string) (*shared.Config, error) {
	yml, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config := new(shared.Config)
	if err := yaml.Unmarshal(yml, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	if config.UsesMinIO() {
		if config.MinIoEndpoint == nil || config.MinIoAccessKey == nil || config.MinIoSecretKey == nil || config.BucketCertificate == nil {
			return nil, fmt.Errorf("invalid %s: storage_driver minio needs minio_endpoint, minio_access_key, minio_secret_key and bucket_certificate", path)
		}
	}

	return config, nil
}

func LoadConfig(path string) {
	config, err := Read(path)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	common.Config = config
}
