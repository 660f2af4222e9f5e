package migrations

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/utils"

	"gorm.io/gorm"
)

const (
	defaultOperatorEmail    = "operator@clientboard.local"
	defaultOperatorPassword = "operator123"
)

// RunMigrations brings the schema up to date and seeds the default operator
// used for local development.
func RunMigrations(db *gorm.DB, jwtSecret string) error {
	slog.Info("running database migrations")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.ClientTask{},
		&models.PublicApprovalLink{},
		&models.ClientTaskHistoryEntry{},
		&models.TaskTemplate{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	if err := seedDefaultOperator(db, jwtSecret); err != nil {
		return fmt.Errorf("seed default operator: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

func seedDefaultOperator(db *gorm.DB, jwtSecret string) error {
	userRepo := repository.NewUserRepository(db)

	if _, err := userRepo.GetByEmail(defaultOperatorEmail); err == nil {
		slog.Info("default operator already exists", "email", defaultOperatorEmail)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(defaultOperatorPassword)
	if err != nil {
		return err
	}

	operator := &models.User{
		Name:         "Default Operator",
		Email:        defaultOperatorEmail,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := userRepo.Create(operator); err != nil {
		return err
	}

	token, err := utils.GenerateToken(operator.ID, operator.Email, jwtSecret, 24*time.Hour)
	if err != nil {
		return err
	}

	slog.Info("default operator created",
		"email", defaultOperatorEmail, "password", defaultOperatorPassword)
	slog.Info("development bearer token (valid 24h)", "token", token)
	return nil
}
