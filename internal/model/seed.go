package model

import (
	"church/internal/auth"
	"church/internal/config"
	"church/internal/entity"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedDefaultAdmin creates the bootstrap administrator when no account uses
// the configured admin email. Existing accounts are left untouched.
func SeedDefaultAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Email:        email,
		FirstName:    strings.TrimSpace(cfg.AdminFirstName),
		LastName:     strings.TrimSpace(cfg.AdminLastName),
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": admin.ID,
		"email":   admin.Email,
	}).Warn("seeded default admin account; rotate its password before production use")
	return nil
}
