package database

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Assessment{},
		&model.Todo{},
		&model.QuizAttempt{},
		&model.IndustryInsight{},
		&model.Resume{},
		&model.CoverLetter{},
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "career_coach.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" && cfg.Path == ":memory:" {
		// every pooled connection would open its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Database connection established (%s)", cfg.Driver)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
