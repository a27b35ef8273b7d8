package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/access"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
)

// RoleTaskRepository answers permission questions straight from the
// role-task tables. Wrap it with the cache decorator for hot paths.
type RoleTaskRepository struct {
	db *gorm.DB
}

func NewRoleTaskRepository(db *gorm.DB) *RoleTaskRepository {
	return &RoleTaskRepository{db: db}
}

func (r *RoleTaskRepository) RoleTasksFor(ctx context.Context, userID uint) ([]*access.RoleTask, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var roleModels []models.RoleTaskModel
	err := tx.
		Joins("JOIN user_roles ON user_roles.role_task_id = role_tasks.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roleModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	if len(roleModels) == 0 {
		return nil, nil
	}

	roleIDs := make([]uint, 0, len(roleModels))
	for _, m := range roleModels {
		roleIDs = append(roleIDs, m.ID)
	}

	var scopes []models.RoleTaskScopeModel
	if err := tx.Where("role_task_id IN ?", roleIDs).Find(&scopes).Error; err != nil {
		return nil, fmt.Errorf("failed to list role scopes: %w", err)
	}

	scopeByRole := make(map[uint][]uint, len(roleIDs))
	for _, s := range scopes {
		scopeByRole[s.RoleTaskID] = append(scopeByRole[s.RoleTaskID], s.TaskID)
	}

	roles := make([]*access.RoleTask, 0, len(roleModels))
	for _, m := range roleModels {
		roles = append(roles, &access.RoleTask{
			ID:        m.ID,
			Name:      m.Name,
			ProcessID: m.ProcessID,
			Helpdesk:  m.Helpdesk,
			Caps:      access.CapabilitySet(m.Capabilities),
			TaskIDs:   scopeByRole[m.ID],
		})
	}

	return roles, nil
}

func (r *RoleTaskRepository) CanActOnTask(ctx context.Context, userID, taskID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.RoleTaskScopeModel{}).
		Joins("JOIN user_roles ON user_roles.role_task_id = role_task_scopes.role_task_id").
		Where("user_roles.user_id = ? AND role_task_scopes.task_id = ?", userID, taskID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check task scope: %w", err)
	}

	return count > 0, nil
}

func (r *RoleTaskRepository) IsHelpdesk(ctx context.Context, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.RoleTaskModel{}).
		Joins("JOIN user_roles ON user_roles.role_task_id = role_tasks.id").
		Where("user_roles.user_id = ? AND role_tasks.helpdesk = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check helpdesk role: %w", err)
	}

	return count > 0, nil
}

func (r *RoleTaskRepository) CanCreateInProcess(ctx context.Context, userID, processID uint) (bool, error) {
	return r.hasCapabilityInProcess(ctx, userID, processID, access.CapCreate)
}

func (r *RoleTaskRepository) CanAddCost(ctx context.Context, userID, taskID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var roleModels []models.RoleTaskModel
	err := tx.
		Joins("JOIN user_roles ON user_roles.role_task_id = role_tasks.id").
		Joins("JOIN role_task_scopes ON role_task_scopes.role_task_id = role_tasks.id").
		Where("user_roles.user_id = ? AND role_task_scopes.task_id = ?", userID, taskID).
		Find(&roleModels).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cost capability: %w", err)
	}

	for _, m := range roleModels {
		if access.CapabilitySet(m.Capabilities).Has(access.CapAddCost) {
			return true, nil
		}
	}

	return false, nil
}

func (r *RoleTaskRepository) HasPrivilege(ctx context.Context, userID, privilegeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.UserPrivilegeModel{}).
		Where("user_id = ? AND privilege_id = ?", userID, privilegeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check privilege: %w", err)
	}

	return count > 0, nil
}

func (r *RoleTaskRepository) hasCapabilityInProcess(ctx context.Context, userID, processID uint, cap access.Capability) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var roleModels []models.RoleTaskModel
	err := tx.
		Joins("JOIN user_roles ON user_roles.role_task_id = role_tasks.id").
		Where("user_roles.user_id = ? AND role_tasks.process_id = ?", userID, processID).
		Find(&roleModels).Error
	if err != nil {
		return false, fmt.Errorf("failed to check process capability: %w", err)
	}

	for _, m := range roleModels {
		if access.CapabilitySet(m.Capabilities).Has(cap) {
			return true, nil
		}
	}

	return false, nil
}
