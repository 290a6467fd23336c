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
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

const (
	// MinSecretLength is the shortest accepted signing secret.
	MinSecretLength = 16

	issuer = "recipebox"
)

// Claims are the token payload.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret. A zero ttl means
// defaults.TokenTTL.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = defaults.TokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for u and returns it with its expiry.
func (t *Tokens) Issue(u *User) (string, time.Time, error) {
	now := t.now().UTC()
	exp := now.Add(t.ttl)

	claims := &Claims{
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies raw and returns its claims. Any failure is UNAUTHORIZED.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, apperrors.Unauthorized("missing token")
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "token expired", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "invalid token", err)
	}
	if !token.Valid || claims.Username == "" {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}

// Respond issues a token for u wrapped in a TokenResponse.
func (t *Tokens) Respond(u *User) (*TokenResponse, error) {
	token, exp, err := t.Issue(u)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, ExpiresAt: exp, User: u}, nil
}
