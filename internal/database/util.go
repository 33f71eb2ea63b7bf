package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/HarishP23/OneStop/internal/model"
)

const pgUniqueViolation = "23505"

// FindAccountByID looks the id up in users, then in mentors.
// It returns gorm.ErrRecordNotFound when neither table has it.
func (d *DBinstanceStruct) FindAccountByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var user model.User
	err := d.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err == nil {
		return user.Account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, err
	}

	var mentor model.Mentor
	if err := d.WithContext(ctx).Where("id = ?", id).First(&mentor).Error; err != nil {
		return model.Account{}, err
	}
	return mentor.Account, nil
}

// FindAccountByEmail looks the normalized email up in users, then in mentors.
func (d *DBinstanceStruct) FindAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	email = model.NormalizeEmail(email)

	var user model.User
	err := d.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return user.Account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, err
	}

	var mentor model.Mentor
	if err := d.WithContext(ctx).Where("email = ?", email).First(&mentor).Error; err != nil {
		return model.Account{}, err
	}
	return mentor.Account, nil
}

// EmailTaken reports whether any user or mentor already uses email
func (d *DBinstanceStruct) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := d.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// IsUniqueViolation reports whether err is a postgres unique constraint violation
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
