package repository

import (
	"context"

	"gorm.io/gorm"

	"staffledger/backend/internal/model"
)

// DocumentRepository 员工附件数据访问接口
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id uint) (*model.Document, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]model.Document, error)
	Delete(ctx context.Context, id uint) error
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Where("doc_id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) ListByEmployee(ctx context.Context, employeeID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("uploaded_at desc").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Where("doc_id = ?", id).
		Delete(&model.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
