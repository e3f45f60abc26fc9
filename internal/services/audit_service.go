package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/logger"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// encodeChanges renders changes as JSON. Nil changes are stored as "".
func encodeChanges(changes map[string]any) (string, error) {
	if changes == nil {
		return "", nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// Log records a mutation. It never fails the caller: write errors are only logged.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Get().With("user_id", userID, "action", action, "resource_type", resourceType, "resource_id", resourceID)

	encoded, err := encodeChanges(changes)
	if err != nil {
		log.Errorw("audit changes not encodable", "error", err)
	}

	if err := s.db.Create(&models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encoded,
	}).Error; err != nil {
		log.Errorw("audit entry not written", "error", err)
	}
}

// ListEntries returns userID's audit trail, newest first.
func (s *auditService) ListEntries(ctx context.Context, userID string, resourceType *string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("user_id = ?", userID)
		if resourceType != nil && *resourceType != "" {
			q = q.Where("resource_type = ?", *resourceType)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := scoped().
		Order("created_at DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, total)
	return &result, nil
}
