package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/utils"
)

// CatalogHandler serves the creation form selectors.
type CatalogHandler struct {
	creationCatalogUC usecases.ListCreationCatalogExecutor
	subtypeFieldsUC   usecases.ListSubtypeFieldsExecutor
	logger            logger.Interface
}

func NewCatalogHandler(
	creationCatalogUC usecases.ListCreationCatalogExecutor,
	subtypeFieldsUC usecases.ListSubtypeFieldsExecutor,
) *CatalogHandler {
	return &CatalogHandler{
		creationCatalogUC: creationCatalogUC,
		subtypeFieldsUC:   subtypeFieldsUC,
		logger:            logger.NewLogger(),
	}
}

// GetCreationCatalog returns the processes the caller can create tickets
// in, with the type and subtype cascade, plus towers and floors.
func (h *CatalogHandler) GetCreationCatalog(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	view, err := h.creationCatalogUC.Execute(c.Request.Context(), usecases.ListCreationCatalogQuery{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to load creation catalog", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", view)
}

// GetSubtypeFields returns the custom fields a subtype declares.
func (h *CatalogHandler) GetSubtypeFields(c *gin.Context) {
	subtypeID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fields, err := h.subtypeFieldsUC.Execute(c.Request.Context(), usecases.ListSubtypeFieldsQuery{SubtypeID: subtypeID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", fields)
}
