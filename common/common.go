package common

import (
	"github.com/minio/minio-go/v7"
	"github.com/sunthewhat/academic-cert-api/type/shared"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

var Config *shared.Config

var Gorm *gorm.DB

var Mongo *mongo.Database

var MinIOClient *minio.Client

var Dialer *gomail.Dialer
