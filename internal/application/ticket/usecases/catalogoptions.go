package usecases

import (
	"context"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

type ListCreationCatalogQuery struct {
	UserID uint
}

// ListCreationCatalogUseCase returns everything the creation form needs
// up front: the processes the user can create tickets in, each with its
// type and subtype cascade, plus the tower and floor selectors.
type ListCreationCatalogUseCase struct {
	reader CatalogOptionsReader
	logger logger.Interface
}

func NewListCreationCatalogUseCase(reader CatalogOptionsReader, logger logger.Interface) *ListCreationCatalogUseCase {
	return &ListCreationCatalogUseCase{reader: reader, logger: logger}
}

func (uc *ListCreationCatalogUseCase) Execute(ctx context.Context, query ListCreationCatalogQuery) (*dto.CreationCatalogView, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user required", "user id must be provided")
	}

	processes, err := uc.reader.CreatableProcesses(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load creatable processes", "user_id", query.UserID, "error", err)
		return nil, err
	}

	towers, err := uc.reader.Towers(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load towers", "user_id", query.UserID, "error", err)
		return nil, err
	}

	return &dto.CreationCatalogView{Processes: processes, Towers: towers}, nil
}

type ListSubtypeFieldsQuery struct {
	SubtypeID uint
}

// ListSubtypeFieldsUseCase returns the custom fields a subtype declares,
// in form display order, with options loaded for select fields.
type ListSubtypeFieldsUseCase struct {
	catalog workflow.Catalog
	logger  logger.Interface
}

func NewListSubtypeFieldsUseCase(catalog workflow.Catalog, logger logger.Interface) *ListSubtypeFieldsUseCase {
	return &ListSubtypeFieldsUseCase{catalog: catalog, logger: logger}
}

func (uc *ListSubtypeFieldsUseCase) Execute(ctx context.Context, query ListSubtypeFieldsQuery) ([]dto.DynamicFieldView, error) {
	if query.SubtypeID == 0 {
		return nil, errors.NewValidationError("subtype required", "subtype id must be provided")
	}

	if _, err := uc.catalog.SubtypeByID(ctx, query.SubtypeID); err != nil {
		return nil, err
	}

	fields, err := uc.catalog.DynamicFieldsFor(ctx, query.SubtypeID)
	if err != nil {
		uc.logger.Errorw("failed to load subtype fields", "subtype_id", query.SubtypeID, "error", err)
		return nil, err
	}

	views := make([]dto.DynamicFieldView, 0, len(fields))
	for _, f := range fields {
		view := dto.DynamicFieldView{
			FieldID: f.FieldID,
			Name:    f.Name,
			Label:   f.Label,
			Kind:    int(f.Kind),
			Order:   f.Order,
		}
		for _, opt := range f.Options {
			view.Options = append(view.Options, dto.FieldOptionView{ID: opt.ID, Value: opt.Value})
		}
		views = append(views, view)
	}
	return views, nil
}
