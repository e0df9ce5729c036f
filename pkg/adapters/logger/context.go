// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rampshare.
//
// go-rampshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package logger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// operationIDKey is the context key for operation IDs
const operationIDKey contextKey = "operation-id"

// OperationIDField is the log field name carrying the operation ID.
const OperationIDField = "operation_id"

// WithOperationID returns a context carrying id.
func WithOperationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, operationIDKey, id)
}

// OperationID returns the operation ID stored in ctx, or "".
func OperationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(operationIDKey).(string); ok {
		return id
	}
	return ""
}

// NewOperationID generates a new UUID v4 operation ID.
func NewOperationID() string {
	return uuid.New().String()
}

// EnsureOperationID returns ctx unchanged if it already carries an
// operation ID, otherwise a child context with a new one.
func EnsureOperationID(ctx context.Context) (context.Context, string) {
	if id := OperationID(ctx); id != "" {
		return ctx, id
	}
	id := NewOperationID()
	return WithOperationID(ctx, id), id
}

// ForContext returns l with the operation ID from ctx attached, if any.
func ForContext(ctx context.Context, l Logger) Logger {
	if l == nil {
		l = NewNoop()
	}
	if id := OperationID(ctx); id != "" {
		return l.With(String(OperationIDField, id))
	}
	return l
}
