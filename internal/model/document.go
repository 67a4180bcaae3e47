package model

import "time"

// Document 员工档案附件 — 对应 employee_documents
// file_path 存相对路径，便于整个数据目录迁移
type Document struct {
	DocID      uint      `gorm:"primaryKey;autoIncrement;column:doc_id"  json:"doc_id"`
	EmployeeID uint      `gorm:"not null;index"                          json:"employee_id"`
	DocType    string    `gorm:"type:varchar(50);not null"               json:"doc_type"`
	AadhaarNo  string    `gorm:"type:varchar(20);not null;default:''"    json:"aadhaar_no"`
	FilePath   string    `gorm:"type:varchar(255);not null"              json:"file_path"`
	UploadedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"uploaded_at"`

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Document) TableName() string { return "employee_documents" }
