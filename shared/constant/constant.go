// Package constant holds names shared across layers: column names of the
// audit metadata, context keys, otel scope names and the values of roles
// and events.
package constant

import (
	"time"
)

const (
	Asterix = "*"
	Empty   = ""
)

// Actors recorded in created_by and modified_by when no user is signed in.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

type contextKey string

const ContextKeyIdentity contextKey = "identity"

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat       = time.RFC3339
	DateOnlyFormat   = time.DateOnly
	MinutesToSeconds = 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelWorkerScopeName     = "worker"
	OtelS3ScopeName         = "s3"
	OtelMailScopeName       = "mail"

	OtelQueryAttributeKey = "query"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)
