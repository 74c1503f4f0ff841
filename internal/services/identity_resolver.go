package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/database"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// RefCache is the session-scoped store for the last-resolved operator
// reference.
type RefCache interface {
	GetRef(ctx context.Context, sessionKey string) (*models.LocalOperatorRef, error)
	SetRef(ctx context.Context, sessionKey string, ref *models.LocalOperatorRef) error
}

// IdentityResolver establishes the canonical operator record from a
// possibly-incomplete cached reference. The lookup strategies used to
// be duplicated inline on every screen, each with its own fallback
// order; they are unified here as one fixed strategy list.
type IdentityResolver struct {
	operatorRepo *database.OperatorRepository
	cache        RefCache
	logger       *logrus.Logger
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(operatorRepo *database.OperatorRepository, cache RefCache, logger *logrus.Logger) *IdentityResolver {
	return &IdentityResolver{
		operatorRepo: operatorRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Resolve tries the lookup strategies strictly in order, stopping at
// the first hit:
//
//  1. direct get by record key
//  2. query by operator_id
//  3. query by contact email
//
// Strategies whose input field is absent are skipped, and a strategy
// that errors counts as a miss (the lookup paths are unreliable; the
// next one may still succeed). On a hit the canonical fields are merged
// back into the reference and the merged reference is persisted to the
// session cache. When every strategy misses, ErrOperatorNotFound is
// returned and the caller must force re-authentication.
func (r *IdentityResolver) Resolve(ctx context.Context, sessionKey string, ref *models.LocalOperatorRef) (*models.OperatorIdentity, error) {
	if ref == nil {
		return nil, ErrOperatorNotFound
	}

	if ref.RecordID != "" {
		op, err := r.operatorRepo.GetByRecordID(ref.RecordID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			r.logger.WithError(err).WithField("record_id", ref.RecordID).
				Warn("Record key lookup failed, trying next strategy")
		}
		if op != nil {
			return r.finish(ctx, sessionKey, ref, op), nil
		}
	}

	if ref.OperatorID != "" {
		op, err := r.operatorRepo.FindByOperatorID(ref.OperatorID)
		if err != nil {
			r.logger.WithError(err).WithField("operator_id", ref.OperatorID).
				Warn("Operator ID lookup failed, trying next strategy")
		}
		if op != nil {
			return r.finish(ctx, sessionKey, ref, op), nil
		}
	}

	if ref.Email != "" {
		op, err := r.operatorRepo.FindByEmail(ref.Email)
		if err != nil {
			r.logger.WithError(err).WithField("email", ref.Email).
				Warn("Email lookup failed")
		}
		if op != nil {
			return r.finish(ctx, sessionKey, ref, op), nil
		}
	}

	r.logger.WithFields(logrus.Fields{
		"record_id":   ref.RecordID,
		"operator_id": ref.OperatorID,
	}).Warn("All identity lookup strategies exhausted")

	return nil, ErrOperatorNotFound
}

func (r *IdentityResolver) finish(ctx context.Context, sessionKey string, cached *models.LocalOperatorRef, op *models.OperatorIdentity) *models.OperatorIdentity {
	merged := mergeRef(cached, op)

	if err := r.cache.SetRef(ctx, sessionKey, merged); err != nil {
		// The cache is an optimization; resolution already succeeded.
		r.logger.WithError(err).Warn("Failed to persist resolved operator reference")
	}

	return op
}

// mergeRef rebuilds the cached reference from the canonical record.
// Store-sourced values take precedence; cached values only fill gaps
// the store record leaves empty.
func mergeRef(cached *models.LocalOperatorRef, op *models.OperatorIdentity) *models.LocalOperatorRef {
	merged := &models.LocalOperatorRef{
		RecordID:     op.RecordID,
		OperatorID:   op.OperatorID,
		Email:        op.ContactEmail,
		BusinessName: op.BusinessName,
		Mobile:       op.ContactPhone,
		Device:       cached.Device,
		ResolvedAt:   time.Now(),
	}

	if merged.OperatorID == "" {
		merged.OperatorID = cached.OperatorID
	}
	if merged.Email == "" {
		merged.Email = cached.Email
	}
	if merged.BusinessName == "" {
		merged.BusinessName = cached.BusinessName
	}
	if merged.Mobile == "" {
		merged.Mobile = cached.Mobile
	}

	return merged
}

// Save upserts the operator profile. Once a resolve has succeeded the
// caller passes knownExists=true and the write is a merge against the
// resolved record key, so repeated saves can never create duplicate
// canonical records. Only when no strategy ever matched is a fresh
// record created, keyed by the business-facing operator ID.
func (r *IdentityResolver) Save(ctx context.Context, sessionKey string, ref *models.LocalOperatorRef, fields *models.UpdateOperatorRequest, knownExists bool) (*models.OperatorIdentity, error) {
	if knownExists {
		if ref.RecordID == "" {
			return nil, fmt.Errorf("save: resolved reference is missing its record key")
		}
		if err := r.operatorRepo.Merge(ref.RecordID, fields); err != nil {
			return nil, fmt.Errorf("failed to save operator profile: %w", err)
		}
		op, err := r.operatorRepo.GetByRecordID(ref.RecordID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload operator profile: %w", err)
		}
		return r.finish(ctx, sessionKey, ref, op), nil
	}

	if ref.OperatorID == "" {
		return nil, fmt.Errorf("save: cannot create an operator record without an operator ID")
	}

	op := &models.OperatorIdentity{
		RecordID:   ref.OperatorID, // record keyed by operator ID on first create
		OperatorID: ref.OperatorID,
		Status:     models.OperatorStatusActive,
	}
	applyFields(op, fields)

	if err := r.operatorRepo.Create(op); err != nil {
		return nil, err
	}

	r.logger.WithField("operator_id", op.OperatorID).Info("Operator record created")

	return r.finish(ctx, sessionKey, ref, op), nil
}

func applyFields(op *models.OperatorIdentity, fields *models.UpdateOperatorRequest) {
	if fields == nil {
		return
	}
	if fields.DisplayName != nil {
		op.DisplayName = *fields.DisplayName
	}
	if fields.BusinessName != nil {
		op.BusinessName = *fields.BusinessName
	}
	if fields.ContactEmail != nil {
		op.ContactEmail = *fields.ContactEmail
	}
	if fields.ContactPhone != nil {
		op.ContactPhone = *fields.ContactPhone
	}
}
