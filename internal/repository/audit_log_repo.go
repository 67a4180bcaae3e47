package repository

import (
	"context"

	"gorm.io/gorm"

	"staffledger/backend/internal/model"
)

// AuditLogRepository 审计日志数据访问接口
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo 创建 AuditLogRepository 实例
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	db := r.db.WithContext(ctx).Order("log_id desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&entries).Error
	return entries, err
}
