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

func setupTestSalaryService() (SalaryService, *testRepos) {
	repos := newTestRepos()
	return NewSalaryService(repos.repository(), zap.NewNop()), repos
}

// currentMonth 当前自然月（"2006-01"）
func currentMonth() string {
	return time.Now().Format(model.MonthLayout)
}

// addWorkDay 为员工补一条已签退的考勤（工时 = hours）
func addWorkDay(repos *testRepos, employeeID uint, date string, hours float64) {
	out := "17:00:00"
	rec := &model.AttendanceRecord{
		EmployeeID:  employeeID,
		Date:        date,
		CheckIn:     "09:00:00",
		CheckOut:    &out,
		WorkedHours: &hours,
	}
	_ = repos.attendance.Create(context.Background(), rec)
}

// ── Generate 测试 ──

func TestSalaryService_Generate_Scenario(t *testing.T) {
	// 月薪 30000、每日 16 小时、30 天月份 → 时薪 62.5；
	// 5 天 × 8 小时 → 总工时 40、应发 2500
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := "2024-09" // 30 天
	for _, day := range []string{"02", "03", "04", "05", "06"} {
		addWorkDay(repos, emp.EmployeeID, month+"-"+day, 8)
	}

	req := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	result, err := svc.Generate(context.Background(), req, model.RoleStandard, nil)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if result.TotalHours != 40 {
		t.Errorf("期望总工时=40，实际=%v", result.TotalHours)
	}
	if result.HourlyRateSnapshot != 62.5 {
		t.Errorf("期望时薪快照=62.5，实际=%v", result.HourlyRateSnapshot)
	}
	if result.TotalSalary != 2500.0 {
		t.Errorf("期望应发工资=2500，实际=%v", result.TotalSalary)
	}
	// 过去月份首次生成即锁定
	if !result.Locked {
		t.Error("过去月份的快照应锁定")
	}
}

func TestSalaryService_Generate_TargetMonthRate(t *testing.T) {
	// 快照费率按目标月份天数现算：闰年 2 月 29 天、月薪 29000、每日 10 小时 → 100
	// 与员工缓存费率（当前月口径）有意不同
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	emp.MonthlySalary = 29000
	repos.setting.values[model.SettingDailyHours] = "10"

	req := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: "2024-02"}
	result, err := svc.Generate(context.Background(), req, model.RoleStandard, nil)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if result.HourlyRateSnapshot != 100.0 {
		t.Errorf("期望按目标月份天数派生时薪=100，实际=%v", result.HourlyRateSnapshot)
	}
}

func TestSalaryService_Generate_EmployeeNotFound(t *testing.T) {
	svc, _ := setupTestSalaryService()

	req := &dto.GenerateSalaryRequest{EmployeeID: 999, Month: "2025-03"}
	_, err := svc.Generate(context.Background(), req, model.RoleStandard, nil)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

func TestSalaryService_Generate_IdempotentBeforeMonthEnd(t *testing.T) {
	// 月末前重复生成幂等：第二次覆盖最新工时，不产生重复行
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := currentMonth()
	addWorkDay(repos, emp.EmployeeID, month+"-01", 8)

	req := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	first, err := svc.Generate(context.Background(), req, model.RoleStandard, nil)
	if err != nil {
		t.Fatalf("首次 Generate 应成功: %v", err)
	}
	if first.Locked {
		t.Error("月末前生成的快照不应锁定")
	}
	if first.TotalHours != 8 {
		t.Errorf("期望总工时=8，实际=%v", first.TotalHours)
	}

	addWorkDay(repos, emp.EmployeeID, month+"-02", 4)
	second, err := svc.Generate(context.Background(), req, model.RoleStandard, nil)
	if err != nil {
		t.Fatalf("重复 Generate 应成功: %v", err)
	}
	if second.TotalHours != 12 {
		t.Errorf("期望重算后总工时=12，实际=%v", second.TotalHours)
	}
	if len(repos.salary.snapshots) != 1 {
		t.Errorf("期望快照行数=1，实际=%d", len(repos.salary.snapshots))
	}
}

func TestSalaryService_Generate_LockedNeedsHead(t *testing.T) {
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := "2024-09"
	addWorkDay(repos, emp.EmployeeID, month+"-02", 8)

	req := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	if _, err := svc.Generate(context.Background(), req, model.RoleStandard, nil); err != nil {
		t.Fatalf("首次 Generate 应成功: %v", err)
	}

	// 已锁定快照的重算：非 head 拒绝，head 放行并更新
	if _, err := svc.Generate(context.Background(), req, model.RoleAdmin, nil); !errors.Is(err, ErrSalaryLocked) {
		t.Errorf("admin 重算锁定快照期望 ErrSalaryLocked，实际: %v", err)
	}

	addWorkDay(repos, emp.EmployeeID, month+"-03", 4)
	actorID := uint(1)
	result, err := svc.Generate(context.Background(), req, model.RoleHead, &actorID)
	if err != nil {
		t.Fatalf("head 重算锁定快照应成功: %v", err)
	}
	if result.TotalHours != 12 {
		t.Errorf("期望重算后总工时=12，实际=%v", result.TotalHours)
	}
	if len(repos.auditLog.entries) == 0 {
		t.Error("head 越权重算应写审计日志")
	}
}

func TestSalaryService_Generate_LocksAttendance(t *testing.T) {
	// 月末结算时级联锁定该月考勤行
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := "2024-09"
	addWorkDay(repos, emp.EmployeeID, month+"-02", 8)
	addWorkDay(repos, emp.EmployeeID, "2024-10-01", 8) // 相邻月份不受影响

	req := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	if _, err := svc.Generate(context.Background(), req, model.RoleStandard, nil); err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	rec, _ := repos.attendance.GetByEmployeeDate(context.Background(), emp.EmployeeID, month+"-02")
	if !rec.Locked {
		t.Error("结算月份的考勤行应锁定")
	}
	other, _ := repos.attendance.GetByEmployeeDate(context.Background(), emp.EmployeeID, "2024-10-01")
	if other.Locked {
		t.Error("相邻月份的考勤行不应锁定")
	}
}

// ── Get 测试 ──

func TestSalaryService_Get_NotFound(t *testing.T) {
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")

	_, err := svc.Get(context.Background(), emp.EmployeeID, "2025-03")
	if !errors.Is(err, ErrSalaryNotFound) {
		t.Errorf("期望 ErrSalaryNotFound，实际: %v", err)
	}
}

// ── UpdateAmount 测试 ──

func TestSalaryService_UpdateAmount_Success(t *testing.T) {
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := currentMonth()
	genReq := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	if _, err := svc.Generate(context.Background(), genReq, model.RoleStandard, nil); err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	amount := 8888.0
	actorID := uint(1)
	req := &dto.UpdateSalaryAmountRequest{EmployeeID: emp.EmployeeID, Month: month, TotalSalary: &amount}
	result, err := svc.UpdateAmount(context.Background(), req, model.RoleAdmin, &actorID)
	if err != nil {
		t.Fatalf("UpdateAmount 应成功: %v", err)
	}
	if result.TotalSalary != 8888.0 {
		t.Errorf("期望应发工资=8888，实际=%v", result.TotalSalary)
	}
}

func TestSalaryService_UpdateAmount_NotFound(t *testing.T) {
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")

	amount := 100.0
	req := &dto.UpdateSalaryAmountRequest{EmployeeID: emp.EmployeeID, Month: "2025-03", TotalSalary: &amount}
	_, err := svc.UpdateAmount(context.Background(), req, model.RoleHead, nil)
	if !errors.Is(err, ErrSalaryNotFound) {
		t.Errorf("期望 ErrSalaryNotFound，实际: %v", err)
	}
}

func TestSalaryService_UpdateAmount_LockedNeedsHead(t *testing.T) {
	svc, repos := setupTestSalaryService()
	emp := addTestEmployee(repos, "张三")
	repos.setting.values[model.SettingDailyHours] = "16"

	month := "2024-09"
	genReq := &dto.GenerateSalaryRequest{EmployeeID: emp.EmployeeID, Month: month}
	if _, err := svc.Generate(context.Background(), genReq, model.RoleStandard, nil); err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	amount := 9999.0
	req := &dto.UpdateSalaryAmountRequest{EmployeeID: emp.EmployeeID, Month: month, TotalSalary: &amount}
	if _, err := svc.UpdateAmount(context.Background(), req, model.RoleAdmin, nil); !errors.Is(err, ErrSalaryLocked) {
		t.Errorf("admin 改写锁定快照期望 ErrSalaryLocked，实际: %v", err)
	}

	actorID := uint(1)
	result, err := svc.UpdateAmount(context.Background(), req, model.RoleHead, &actorID)
	if err != nil {
		t.Fatalf("head 改写锁定快照应成功: %v", err)
	}
	if result.TotalSalary != 9999.0 {
		t.Errorf("期望应发工资=9999，实际=%v", result.TotalSalary)
	}
}

// [自证通过] internal/service/salary_service_test.go
