package service

import (
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

type FailureKind string

const (
	Unauthenticated  FailureKind = "unauthenticated"
	Unauthorized     FailureKind = "unauthorized"
	ValidationFailed FailureKind = "validation_failed"
	UploadFailed     FailureKind = "upload_failed"
	StoreFailed      FailureKind = "store_failed"
)

// Failure explains why a mutation stopped. Fields is only set for validation.
type Failure struct {
	Kind    FailureKind
	Message string
	Fields  map[string][]string
}

// Outcome is the result of one mutation. Exactly one of Project (on create and
// update) or Failure is meaningful, selected by OK.
type Outcome struct {
	OK      bool
	Project *domain.Project
	Failure *Failure
}

func success(p *domain.Project) Outcome {
	return Outcome{OK: true, Project: p}
}

func fail(kind FailureKind, msg string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Message: msg}}
}
