// Package audit records mutating operations. Recording is fire-and-forget:
// a failed audit write is logged and swallowed, never surfaced to the caller
// and never allowed to mask the primary result.
package audit

import (
	"context"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry describes one auditable operation
type Entry struct {
	TenantID     *uint
	UserID       *uint
	Action       string
	Resource     string
	ResourceID   string
	OldValues    model.JSONMap
	NewValues    model.JSONMap
	IPAddress    string
	UserAgent    string
	Status       string
	ErrorMessage string
}

// Recorder persists audit log entries
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates an audit recorder
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record writes an audit entry. Errors are logged internally and dropped.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	status := entry.Status
	if status == "" {
		status = "SUCCESS"
	}

	row := model.AuditLog{
		TenantID:     entry.TenantID,
		UserID:       entry.UserID,
		Action:       entry.Action,
		Resource:     entry.Resource,
		ResourceID:   entry.ResourceID,
		OldValues:    entry.OldValues,
		NewValues:    entry.NewValues,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		Status:       status,
		ErrorMessage: entry.ErrorMessage,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.FromContext(ctx).Error("Failed to create audit log",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err))
	}
}

// Filter narrows an audit log listing
type Filter struct {
	TenantID   *uint
	UserID     *uint
	Resource   string
	ResourceID string
	Page       int
	Limit      int
}

// Page is one page of audit log entries, newest first
type Page struct {
	Data       []model.AuditLog `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List returns audit log entries matching the filter, newest first
func (r *Recorder) List(ctx context.Context, filter Filter) (*Page, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []model.AuditLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &Page{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

// Sanitize strips sensitive keys from a snapshot before it is stored
func Sanitize(values model.JSONMap) model.JSONMap {
	if values == nil {
		return nil
	}
	sanitized := make(model.JSONMap, len(values))
	for key, value := range values {
		switch key {
		case "password", "refreshToken", "accessToken":
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}
