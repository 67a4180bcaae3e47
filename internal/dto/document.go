package dto

// ── 档案附件模块 DTO ──

// UploadDocumentForm 附件上传表单字段（multipart，文件字段名 "file"）
type UploadDocumentForm struct {
	DocType   string `form:"doc_type"   binding:"required,max=50"`
	AadhaarNo string `form:"aadhaar_no" binding:"max=20"`
}

// DocumentResponse 附件响应
type DocumentResponse struct {
	DocID      uint   `json:"doc_id"`
	EmployeeID uint   `json:"employee_id"`
	DocType    string `json:"doc_type"`
	AadhaarNo  string `json:"aadhaar_no"`
	FilePath   string `json:"file_path"`
	UploadedAt string `json:"uploaded_at"`
}
