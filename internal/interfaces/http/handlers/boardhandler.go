package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/utils"
)

// BoardHandler serves the Kanban board view.
type BoardHandler struct {
	listBoardUC usecases.ListBoardExecutor
	logger      logger.Interface
}

func NewBoardHandler(listBoardUC usecases.ListBoardExecutor) *BoardHandler {
	return &BoardHandler{
		listBoardUC: listBoardUC,
		logger:      logger.NewLogger(),
	}
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	view, err := h.listBoardUC.Execute(c.Request.Context(), usecases.ListBoardQuery{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to build board", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", view)
}
