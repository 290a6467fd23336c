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
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/server"
)

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims returns ctx carrying c.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the caller's claims, if authenticated.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

// RecipeLookup resolves a recipe to check ownership.
type RecipeLookup interface {
	GetRecipeByID(ctx context.Context, id int64) (*recipe.Recipe, error)
}

// Guard is the authorization middleware set.
type Guard struct {
	tokens  *Tokens
	recipes RecipeLookup
}

// NewGuard returns a Guard. recipes may be nil when RequireOwnerOrAdmin is
// not used.
func NewGuard(tokens *Tokens, recipes RecipeLookup) *Guard {
	return &Guard{tokens: tokens, recipes: recipes}
}

// Authenticate stores valid bearer token claims in the request context.
// Missing or invalid tokens are ignored here.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := g.tokens.Parse(raw)
		if err != nil {
			slog.Debug("ignoring invalid token",
				"requestID", server.RequestIDFrom(r.Context()),
				"error", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireLoggedIn rejects anonymous callers.
func (g *Guard) RequireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFrom(r.Context()); !ok {
			deny(w, r, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin role.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFrom(r.Context())
		if !ok || !c.IsAdmin {
			deny(w, r, "admin required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCorrectUserOrAdmin allows admins and the user named by {username}.
func (g *Guard) RequireCorrectUserOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFrom(r.Context())
		if !ok || (!c.IsAdmin && c.Username != chi.URLParam(r, "username")) {
			deny(w, r, "must be the same user or admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwnerOrAdmin allows admins and the owner of recipe {id}. A missing
// recipe is reported as NOT_FOUND.
func (g *Guard) RequireOwnerOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFrom(r.Context())
		if !ok {
			deny(w, r, "login required")
			return
		}
		if c.IsAdmin {
			next.ServeHTTP(w, r)
			return
		}

		id, err := recipe.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "invalid recipe id", nil)
			return
		}
		rec, err := g.recipes.GetRecipeByID(r.Context(), id)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "failed to load recipe", nil)
			return
		}
		if rec.Owner != c.Username {
			deny(w, r, "must be the recipe owner or admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func deny(w http.ResponseWriter, r *http.Request, msg string) {
	server.WriteError(w, r, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, msg, false, nil)
}
