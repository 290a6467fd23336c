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
	"regexp"
	"strings"
	"time"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,30}$`)

// User is a registered account.
type User struct {
	Username     string    `gorm:"primaryKey;size:30" json:"username" yaml:"username"`
	PasswordHash string    `gorm:"not null" json:"-" yaml:"-"`
	Email        string    `gorm:"not null;default:''" json:"email" yaml:"email"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin" yaml:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// TableName overrides the GORM default.
func (User) TableName() string { return "users" }

// Registration is the sign-up request body.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Validate checks the registration fields.
func (r *Registration) Validate() error {
	if r == nil {
		return apperrors.BadRequest("registration is required")
	}
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	if !usernamePattern.MatchString(r.Username) {
		return apperrors.BadRequest("username must be 1-30 letters, digits, '.', '_' or '-'")
	}
	if n := len(r.Password); n < minPasswordLength || n > maxPasswordLength {
		return apperrors.BadRequest("password must be %d-%d characters", minPasswordLength, maxPasswordLength)
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return apperrors.BadRequest("invalid email: %q", r.Email)
	}
	return nil
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
