package shared

type Config struct {
	Environment         *bool     `yaml:"environment" validate:"required"`
	Port                *string   `yaml:"port" validate:"required"`
	BaseURL             *string   `yaml:"base_url" validate:"required,url"`
	Cors                []*string `yaml:"cors" validate:"required"`
	JWTSecret           *string   `yaml:"jwt_secret" validate:"required,min=16"`
	Postgres            *string   `yaml:"postgres" validate:"required"`
	PostgresReplicas    []*string `yaml:"postgres_replicas"`
	Mongo               *string   `yaml:"mongo" validate:"required"`
	MongoDatabase       *string   `yaml:"mongo_database" validate:"required"`
	StorageDriver       *string   `yaml:"storage_driver" validate:"required,oneof=local minio"`
	CertificateDir      *string   `yaml:"certificate_dir" validate:"required"`
	UploadDir           *string   `yaml:"upload_dir" validate:"required"`
	MinIoEndpoint       *string   `yaml:"minio_endpoint"`
	MinIoAccessKey      *string   `yaml:"minio_access_key"`
	MinIoSecretKey      *string   `yaml:"minio_secret_key"`
	MinIoSecure         *bool     `yaml:"minio_secure"`
	BucketCertificate   *string   `yaml:"bucket_certificate"`
	MailEnabled         *bool     `yaml:"mail_enabled"`
	MailHost            *string   `yaml:"mail_host"`
	MailPort            *int      `yaml:"mail_port"`
	MailUser            *string   `yaml:"mail_user"`
	MailPass            *string   `yaml:"mail_pass"`
	RabbitMQURL         *string   `yaml:"rabbitmq_url"`
	RabbitMQExchange    *string   `yaml:"rabbitmq_exchange"`
	AsyncRowThreshold   *int      `yaml:"async_row_threshold" validate:"omitempty,min=1"`
	IssuanceWorkers     *int      `yaml:"issuance_workers" validate:"omitempty,min=1,max=32"`
	UploadRetentionDays *int      `yaml:"upload_retention_days" validate:"omitempty,min=1"`
}

// UsesMinIO reports whether artifacts go to the object store instead of certificate_dir.
func (c *Config) UsesMinIO() bool {
	return c.StorageDriver != nil && *c.StorageDriver == "minio"
}

func (c *Config) MailOn() bool {
	return c.MailEnabled != nil && *c.MailEnabled
}

func (c *Config) AsyncThreshold() int {
	if c.AsyncRowThreshold == nil {
		return 200
	}
	return *c.AsyncRowThreshold
}

func (c *Config) Workers() int {
	if c.IssuanceWorkers == nil {
		return 2
	}
	return *c.IssuanceWorkers
}

func (c *Config) RetentionDays() int {
	if c.UploadRetentionDays == nil {
		return 7
	}
	return *c.UploadRetentionDays
}
