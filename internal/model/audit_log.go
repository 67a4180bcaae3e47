package model

import "time"

// 审计动作
const (
	AuditManualCheckIn      = "attendance.manual_check_in"
	AuditManualCheckOut     = "attendance.manual_check_out"
	AuditSalaryLockOverride = "salary.lock_override"
	AuditSalaryAmountEdit   = "salary.amount_edit"
	AuditSettingsChange     = "settings.change"
	AuditEmployeeDelete     = "employee.delete"
	AuditUserDelete         = "user.delete"
)

// AuditLog 审计日志 — 对应 audit_logs
// 越权/敏感操作留痕；写入为尽力而为，失败不阻断主操作
type AuditLog struct {
	LogID     uint      `gorm:"primaryKey;autoIncrement;column:log_id" json:"log_id"`
	UserID    *uint     `json:"user_id"`
	Action    string    `gorm:"type:varchar(100);not null"             json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null;default:''"  json:"entity"`
	Reason    string    `gorm:"type:varchar(255);not null;default:''"  json:"reason"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }
