package migration

import (
	"fixdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProcessModel{},
		&models.TaskModel{},
		&models.ResultModel{},
		&models.TicketTypeModel{},
		&models.SubtypeModel{},
		&models.FieldModel{},
		&models.SubtypeFieldModel{},
		&models.FieldOptionModel{},
		&models.TicketModel{},
		&models.LogEntryModel{},
		&models.AttachmentModel{},
		&models.FieldValueModel{},
		&models.TicketOwnerModel{},
		&models.RoleTaskModel{},
		&models.RoleTaskScopeModel{},
		&models.UserRoleModel{},
		&models.UserPrivilegeModel{},
		&models.UserModel{},
		&models.DepartmentModel{},
		&models.TowerModel{},
		&models.FloorModel{},
	}
}
