package dto

// ── 设置模块 DTO ──

// UpdateWorkingHoursRequest 更新每日应工作小时数请求
// 写入后同步重算全员时薪缓存
type UpdateWorkingHoursRequest struct {
	Hours *float64 `json:"hours" binding:"required,gte=0,lte=24"`
}

// WorkingHoursResponse 每日应工作小时数响应
type WorkingHoursResponse struct {
	Hours float64 `json:"hours"`
}

// UpdateSubscriptionRequest 更新订阅到期日请求
type UpdateSubscriptionRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// SubscriptionResponse 订阅到期日响应
type SubscriptionResponse struct {
	Date string `json:"date"` // 空串表示未设置
}

// UpdateDemoModeRequest 更新演示模式请求
type UpdateDemoModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// DemoModeResponse 演示模式响应
type DemoModeResponse struct {
	Enabled bool `json:"enabled"`
}

// BackupResponse 备份响应
type BackupResponse struct {
	Filename string `json:"filename"`
}

// [自证通过] internal/dto/settings.go
