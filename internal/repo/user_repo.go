// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User and
// AdminPermission models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (exported in this package as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateUser inserts a new User row with a UUID primary key.
func CreateUser(ctx context.Context, db *gorm.DB, username, email string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by their unique handle.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsers returns the total number of registered users.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}

// ListUsersPage returns a paginated slice of users ordered by creation time
// descending. The caller computes offset and limit.
func ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetAdminFlag updates the coarse admin flag for a user. Returns ErrNotFound
// when no row was affected.
func SetAdminFlag(ctx context.Context, db *gorm.DB, id string, isAdmin bool) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPermissions returns the fine-grained permission strings held by a user.
func ListPermissions(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.AdminPermission{}).
		Where("user_id = ?", userID).
		Order("permission asc").
		Pluck("permission", &out).Error
	return out, err
}

// HasPermission reports whether the user holds the named permission.
func HasPermission(ctx context.Context, db *gorm.DB, userID, permission string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.AdminPermission{}).
		Where("user_id = ? AND permission = ?", userID, permission).
		Count(&total).Error
	return total > 0, err
}

// GrantPermission inserts a permission row for the user. The combination
// (user_id, permission) is unique; granting twice surfaces the DB constraint
// error, which the service layer translates.
func GrantPermission(ctx context.Context, db *gorm.DB, userID, permission string) error {
	p := &domain.AdminPermission{
		ID:         uuid.NewString(),
		UserID:     userID,
		Permission: permission,
		CreatedAt:  time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(p).Error
}

// RevokePermission deletes a permission row. Revoking a permission the user
// never held returns ErrNotFound.
func RevokePermission(ctx context.Context, db *gorm.DB, userID, permission string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND permission = ?", userID, permission).
		Delete(&domain.AdminPermission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
