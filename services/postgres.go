package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/services/repositories"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	appContext.DefaultService
	db *gorm.DB

	database string

	adRepo         *repositories.AdRepository
	articleRepo    *repositories.ArticleRepository
	toolRepo       *repositories.ToolRepository
	newsletterRepo *repositories.NewsletterRepository
	userRepo       *repositories.UserRepository
	analyticsRepo  *repositories.AnalyticsRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *appContext.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "almaqal"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.Ad{},
		&model.AdClick{},
		&model.AdImpression{},

		&model.Article{},
		&model.Category{},
		&model.AITool{},
		&model.Subscriber{},

		&model.User{},
		&model.AnalyticsEvent{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.adRepo = repositories.NewAdRepository(ds.db)
	ds.articleRepo = repositories.NewArticleRepository(ds.db)
	ds.toolRepo = repositories.NewToolRepository(ds.db)
	ds.newsletterRepo = repositories.NewNewsletterRepository(ds.db)
	ds.userRepo = repositories.NewUserRepository(ds.db)
	ds.analyticsRepo = repositories.NewAnalyticsRepository(ds.db)

	ticker := time.NewTicker(24 * time.Hour)
	go func() {
		for range ticker.C {
			if err := ds.CleanupExpiredData(); err != nil {
				log.Printf("Failed to cleanup expired data: %v", err)
			}
		}
	}()

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Ads() *repositories.AdRepository {
	return ds.adRepo
}

func (ds *PostgresService) Articles() *repositories.ArticleRepository {
	return ds.articleRepo
}

func (ds *PostgresService) Tools() *repositories.ToolRepository {
	return ds.toolRepo
}

func (ds *PostgresService) Newsletter() *repositories.NewsletterRepository {
	return ds.newsletterRepo
}

func (ds *PostgresService) Users() *repositories.UserRepository {
	return ds.userRepo
}

func (ds *PostgresService) Analytics() *repositories.AnalyticsRepository {
	return ds.analyticsRepo
}

// CleanupExpiredData trims analytics events past their retention window.
// Click and impression records are kept; they back advertiser reporting.
func (ds *PostgresService) CleanupExpiredData() error {
	retentionDays := 90
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return ds.analyticsRepo.DeleteOlderThan(context.Background(), cutoff)
}
