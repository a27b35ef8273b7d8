package models

type RoleTaskModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	ProcessID    uint   `gorm:"not null;index"`
	Helpdesk     bool   `gorm:"not null;default:false"`
	Capabilities uint16 `gorm:"not null;default:0"`
}

func (RoleTaskModel) TableName() string {
	return "role_tasks"
}

// RoleTaskScopeModel is the task scope of a role: one row per task its
// holders may act on.
type RoleTaskScopeModel struct {
	ID         uint `gorm:"primaryKey"`
	RoleTaskID uint `gorm:"not null;index"`
	TaskID     uint `gorm:"not null;index"`
}

func (RoleTaskScopeModel) TableName() string {
	return "role_task_scopes"
}

type UserRoleModel struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;index"`
	RoleTaskID uint `gorm:"not null;index"`
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}

type UserPrivilegeModel struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;index"`
	PrivilegeID uint `gorm:"not null;index"`
}

func (UserPrivilegeModel) TableName() string {
	return "user_privileges"
}

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:150;not null"`
	Account      string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255"`
	DepartmentID uint   `gorm:"index"`
	Active       bool   `gorm:"not null;default:true"`
}

func (UserModel) TableName() string {
	return "users"
}

type DepartmentModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:150;not null"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

type TowerModel struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:100;not null"`
	Active bool   `gorm:"not null;default:true"`
}

func (TowerModel) TableName() string {
	return "towers"
}

type FloorModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:100;not null"`
	TowerID uint   `gorm:"not null;index"`
	Active  bool   `gorm:"not null;default:true"`
}

func (FloorModel) TableName() string {
	return "floors"
}
