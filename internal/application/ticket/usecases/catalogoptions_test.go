package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
)

func TestListCreationCatalogUseCase_Execute(t *testing.T) {
	t.Run("returns processes and towers together", func(t *testing.T) {
		reader := &mockCatalogOptionsReader{
			creatableProcessesFunc: func(ctx context.Context, userID uint) ([]dto.ProcessOption, error) {
				assert.Equal(t, uint(7), userID)
				return []dto.ProcessOption{{ID: 1, Name: "Mantenimiento"}}, nil
			},
			towersFunc: func(ctx context.Context, userID uint) ([]dto.TowerOption, error) {
				assert.Equal(t, uint(7), userID)
				return []dto.TowerOption{{ID: 1, Name: "Torre A"}}, nil
			},
		}
		uc := NewListCreationCatalogUseCase(reader, noopLogger{})

		view, err := uc.Execute(context.Background(), ListCreationCatalogQuery{UserID: 7})

		require.NoError(t, err)
		require.Len(t, view.Processes, 1)
		assert.Equal(t, "Mantenimiento", view.Processes[0].Name)
		require.Len(t, view.Towers, 1)
		assert.Equal(t, "Torre A", view.Towers[0].Name)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		uc := NewListCreationCatalogUseCase(&mockCatalogOptionsReader{}, noopLogger{})

		_, err := uc.Execute(context.Background(), ListCreationCatalogQuery{})

		assert.True(t, errors.IsValidationError(err))
	})
}

func TestListSubtypeFieldsUseCase_Execute(t *testing.T) {
	subtype := &workflow.Subtype{ID: 3, Name: "Iluminacion", TicketTypeID: 1, ProcessID: 1}

	t.Run("maps fields with their options", func(t *testing.T) {
		catalog := &mockCatalog{
			subtypeByIDFunc: func(ctx context.Context, subtypeID uint) (*workflow.Subtype, error) {
				return subtype, nil
			},
			dynamicFieldsForFunc: func(ctx context.Context, subtypeID uint) ([]*workflow.DynamicField, error) {
				return []*workflow.DynamicField{
					{FieldID: 2, Name: "ubicacion", Label: "Ubicacion", Kind: workflow.FieldKindSelect, Order: 1,
						Options: []workflow.FieldOption{{ID: 9, Value: "Lobby"}, {ID: 10, Value: "Sotano"}}},
					{FieldID: 5, Name: "marca", Label: "Marca", Kind: workflow.FieldKindText, Order: 2},
				}, nil
			},
		}
		uc := NewListSubtypeFieldsUseCase(catalog, noopLogger{})

		views, err := uc.Execute(context.Background(), ListSubtypeFieldsQuery{SubtypeID: 3})

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Ubicacion", views[0].Label)
		require.Len(t, views[0].Options, 2)
		assert.Equal(t, "Lobby", views[0].Options[0].Value)
		assert.Empty(t, views[1].Options)
	})

	t.Run("unknown subtype reports not found", func(t *testing.T) {
		catalog := &mockCatalog{
			subtypeByIDFunc: func(ctx context.Context, subtypeID uint) (*workflow.Subtype, error) {
				return nil, errors.NewNotFoundError("subtype not found")
			},
		}
		uc := NewListSubtypeFieldsUseCase(catalog, noopLogger{})

		_, err := uc.Execute(context.Background(), ListSubtypeFieldsQuery{SubtypeID: 99})

		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("rejects missing subtype id", func(t *testing.T) {
		uc := NewListSubtypeFieldsUseCase(&mockCatalog{}, noopLogger{})

		_, err := uc.Execute(context.Background(), ListSubtypeFieldsQuery{})

		assert.True(t, errors.IsValidationError(err))
	})
}
