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

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/serializer"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Status    int            `json:"status"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a standardized error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Status:    statusCode,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes an error response derived from err. Structured
// errors keep their code, message and context. Anything else is reported as
// INTERNAL with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	var se *apperrors.StructuredError
	if !errors.As(err, &se) {
		se = apperrors.Wrap(apperrors.ErrCodeInternal, fallbackMessage, err)
	}

	status := HTTPStatusFromCode(se.Code)
	details := mergeDetails(se.Context, extraDetails)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"requestID", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"code", se.Code,
			"error", err,
		)
	} else if se.Cause != nil && exposesCause(se.Code) {
		details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
	}

	WriteError(w, r, status, se.Code, se.Message, retryableFromCode(se.Code), details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	return apperrors.HTTPStatus(code)
}

func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout,
		apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded,
		apperrors.ErrCodeTransaction,
		apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// exposesCause reports whether a cause may be echoed to the client.
func exposesCause(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeConflict:
		return true
	default:
		return false
	}
}

func mergeDetails(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
