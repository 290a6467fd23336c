// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/store"
)

// errBadCredentials is returned for unknown users and wrong passwords alike.
var errBadCredentials = apperrors.Unauthorized("invalid username or password")

// Users manages accounts.
type Users struct {
	db   *gorm.DB
	cost int
}

// NewUsers returns a Users bound to db.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db, cost: bcrypt.DefaultCost}
}

// Register creates a non-admin account. A taken username is a CONFLICT.
func (u *Users) Register(ctx context.Context, reg Registration) (*User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     reg.Username,
		PasswordHash: string(hash),
		Email:        reg.Email,
	}
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if store.IsDuplicate(err) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeConflict,
				fmt.Sprintf("username already taken: %s", reg.Username),
				map[string]any{"username": reg.Username})
		}
		return nil, fmt.Errorf("failed to create user %s: %w", reg.Username, err)
	}

	slog.Info("user registered", "username", user.Username)
	return user, nil
}

// Authenticate returns the user when password matches.
func (u *Users) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := u.Get(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return user, nil
}

// Get returns the named user.
func (u *Users) Get(ctx context.Context, username string) (*User, error) {
	var user User
	err := u.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &user, nil
}

// List returns every account ordered by username.
func (u *Users) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := u.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetAdmin grants or revokes the admin role.
func (u *Users) SetAdmin(ctx context.Context, username string, admin bool) (*User, error) {
	res := u.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", username).
		Update("is_admin", admin)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("user", username)
	}
	slog.Info("user role updated", "username", username, "admin", admin)
	return u.Get(ctx, username)
}
