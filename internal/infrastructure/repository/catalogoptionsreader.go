package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/domain/access"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
)

// CatalogOptionsReader loads the creation form selectors: creatable
// processes with their type/subtype cascade, and towers with floors.
type CatalogOptionsReader struct {
	db *gorm.DB
}

var _ usecases.CatalogOptionsReader = (*CatalogOptionsReader)(nil)

func NewCatalogOptionsReader(db *gorm.DB) *CatalogOptionsReader {
	return &CatalogOptionsReader{db: db}
}

// creatableProcessModels returns the processes where the user holds a
// role with the create capability, ordered by name.
func (r *CatalogOptionsReader) creatableProcessModels(ctx context.Context, userID uint) ([]models.ProcessModel, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var roleModels []models.RoleTaskModel
	err := tx.
		Joins("JOIN user_roles ON user_roles.role_task_id = role_tasks.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roleModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}

	processIDs := make([]uint, 0, len(roleModels))
	seen := make(map[uint]bool, len(roleModels))
	for _, m := range roleModels {
		if !access.CapabilitySet(m.Capabilities).Has(access.CapCreate) {
			continue
		}
		if seen[m.ProcessID] {
			continue
		}
		seen[m.ProcessID] = true
		processIDs = append(processIDs, m.ProcessID)
	}
	if len(processIDs) == 0 {
		return nil, nil
	}

	var processModels []models.ProcessModel
	err = tx.
		Where("id IN ?", processIDs).
		Order("name ASC").
		Find(&processModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	return processModels, nil
}

func (r *CatalogOptionsReader) CreatableProcesses(ctx context.Context, userID uint) ([]dto.ProcessOption, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	processModels, err := r.creatableProcessModels(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(processModels) == 0 {
		return nil, nil
	}

	processIDs := make([]uint, 0, len(processModels))
	for _, m := range processModels {
		processIDs = append(processIDs, m.ID)
	}

	var typeModels []models.TicketTypeModel
	err = tx.
		Where("process_id IN ?", processIDs).
		Order("name ASC").
		Find(&typeModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}

	typeIDs := make([]uint, 0, len(typeModels))
	for _, m := range typeModels {
		typeIDs = append(typeIDs, m.ID)
	}

	var subtypeModels []models.SubtypeModel
	if len(typeIDs) > 0 {
		err = tx.
			Where("ticket_type_id IN ?", typeIDs).
			Order("name ASC").
			Find(&subtypeModels).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list subtypes: %w", err)
		}
	}

	subtypesByType := make(map[uint][]dto.SubtypeOption, len(typeIDs))
	for _, m := range subtypeModels {
		subtypesByType[m.TicketTypeID] = append(subtypesByType[m.TicketTypeID], dto.SubtypeOption{
			ID:   m.ID,
			Name: m.Name,
		})
	}

	typesByProcess := make(map[uint][]dto.TicketTypeOption, len(processIDs))
	for _, m := range typeModels {
		typesByProcess[m.ProcessID] = append(typesByProcess[m.ProcessID], dto.TicketTypeOption{
			ID:       m.ID,
			Name:     m.Name,
			Subtypes: subtypesByType[m.ID],
		})
	}

	options := make([]dto.ProcessOption, 0, len(processModels))
	for _, m := range processModels {
		options = append(options, dto.ProcessOption{
			ID:         m.ID,
			Name:       m.Name,
			Multitower: m.Multitower,
			TowerID:    m.TowerID,
			FloorID:    m.FloorID,
			Types:      typesByProcess[m.ID],
		})
	}

	return options, nil
}

// Towers lists active towers available to the user for ticket creation:
// a tower is offered when one of the user's creatable processes is bound
// to it, or when any such process is multitower. Inactive towers and
// floors never surface.
func (r *CatalogOptionsReader) Towers(ctx context.Context, userID uint) ([]dto.TowerOption, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	processModels, err := r.creatableProcessModels(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(processModels) == 0 {
		return nil, nil
	}

	multitower := false
	boundTowerIDs := make([]uint, 0, len(processModels))
	for _, m := range processModels {
		if m.Multitower {
			multitower = true
		}
		if m.TowerID != nil {
			boundTowerIDs = append(boundTowerIDs, *m.TowerID)
		}
	}

	towerQuery := tx.Where("active = ?", true)
	if !multitower {
		if len(boundTowerIDs) == 0 {
			return nil, nil
		}
		towerQuery = towerQuery.Where("id IN ?", boundTowerIDs)
	}

	var towerModels []models.TowerModel
	if err := towerQuery.Order("name ASC").Find(&towerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list towers: %w", err)
	}
	if len(towerModels) == 0 {
		return nil, nil
	}

	towerIDs := make([]uint, 0, len(towerModels))
	for _, m := range towerModels {
		towerIDs = append(towerIDs, m.ID)
	}

	var floorModels []models.FloorModel
	err = tx.
		Where("tower_id IN ? AND active = ?", towerIDs, true).
		Order("name ASC").
		Find(&floorModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}

	floorsByTower := make(map[uint][]dto.FloorOption, len(towerModels))
	for _, m := range floorModels {
		floorsByTower[m.TowerID] = append(floorsByTower[m.TowerID], dto.FloorOption{
			ID:   m.ID,
			Name: m.Name,
		})
	}

	options := make([]dto.TowerOption, 0, len(towerModels))
	for _, m := range towerModels {
		options = append(options, dto.TowerOption{
			ID:     m.ID,
			Name:   m.Name,
			Floors: floorsByTower[m.ID],
		})
	}

	return options, nil
}
