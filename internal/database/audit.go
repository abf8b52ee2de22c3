package database

import (
	"context"

	"project-tracker/internal/logutils"
	"project-tracker/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 100
	unknownUser       = "Unknown"
)

// AuditRecorder appends audit log entries. Writing is best effort: a
// failed insert is logged and never reaches the caller.
type AuditRecorder struct {
	db *gorm.DB
}

func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{db: db}
}

// Record stores one entry. actorID 0 means no acting user.
func (r *AuditRecorder) Record(ctx context.Context, entityType string, entityID, actorID uint, action string, changes map[string]any) {
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    datatypes.JSONMap(changes),
	}
	if actorID != 0 {
		entry.UserID = &actorID
	}

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logutils.Log.WithError(err).WithFields(logutils.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
			"user_id":     actorID,
		}).Error("audit log write failed")
	}
}

type AuditFilter struct {
	EntityType string
	EntityID   uint
	UserID     uint
}

// AuditEntry is an audit log row with the acting user's name.
type AuditEntry struct {
	models.AuditLog
	UserName string `json:"user_name"`
}

// List returns the newest entries matching filter. limit is clamped to
// (0, MaxAuditLimit], with 0 or less meaning DefaultAuditLimit.
func (r *AuditRecorder) List(ctx context.Context, filter AuditFilter, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	q := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, COALESCE(users.name, '') AS user_name").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id")

	if filter.EntityType != "" {
		q = q.Where("audit_logs.entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != 0 {
		q = q.Where("audit_logs.entity_id = ?", filter.EntityID)
	}
	if filter.UserID != 0 {
		q = q.Where("audit_logs.user_id = ?", filter.UserID)
	}

	entries := []AuditEntry{}
	if err := q.Order("audit_logs.created_at DESC, audit_logs.id DESC").
		Limit(limit).
		Scan(&entries).Error; err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].UserName == "" {
			entries[i].UserName = unknownUser
		}
	}
	return entries, nil
}
