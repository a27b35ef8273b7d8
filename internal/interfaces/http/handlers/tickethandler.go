package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/utils"
)

// TicketHandler exposes the ticket lifecycle over HTTP: creation,
// detail, result execution, comments and attachment uploads.
type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	getDetailUC     usecases.GetTicketDetailExecutor
	executeResultUC usecases.ExecuteResultExecutor
	addCommentUC    usecases.AddCommentExecutor
	addAttachmentUC usecases.AddAttachmentExecutor
	downloadUC      usecases.DownloadAttachmentExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getDetailUC usecases.GetTicketDetailExecutor,
	executeResultUC usecases.ExecuteResultExecutor,
	addCommentUC usecases.AddCommentExecutor,
	addAttachmentUC usecases.AddAttachmentExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		getDetailUC:     getDetailUC,
		executeResultUC: executeResultUC,
		addCommentUC:    addCommentUC,
		addAttachmentUC: addAttachmentUC,
		downloadUC:      downloadUC,
		logger:          logger.NewLogger(),
	}
}

type dynamicValueRequest struct {
	FieldID uint   `json:"field_id"`
	Value   string `json:"value"`
}

type createTicketRequest struct {
	ProcessID   uint   `json:"process_id" validate:"required"`
	SubtypeID   uint   `json:"subtype_id" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
}

type executeResultRequest struct {
	ResultID uint    `json:"result_id" binding:"required"`
	Comment  string  `json:"comment"`
	Billed   *bool   `json:"billed"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateTicket accepts a multipart form so attachments can ride along
// with the creation request. Dynamic field values arrive as a JSON
// array in the "fields" form value.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Warnw("invalid multipart form for create ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := createTicketRequest{
		ProcessID:   formUint(form, "process_id"),
		SubtypeID:   formUint(form, "subtype_id"),
		Description: formValue(form, "description"),
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateTicketCommand{
		CreatorID:      userID,
		ProcessID:      req.ProcessID,
		SubtypeID:      req.SubtypeID,
		TowerID:        formUint(form, "tower_id"),
		FloorID:        formUint(form, "floor_id"),
		LocationDetail: formValue(form, "location_detail"),
		Description:    req.Description,
	}

	if raw := formValue(form, "fields"); raw != "" {
		var values []dynamicValueRequest
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid fields payload")
			return
		}
		for _, v := range values {
			cmd.DynamicValues = append(cmd.DynamicValues, usecases.DynamicValueInput{
				FieldID: v.FieldID,
				Value:   v.Value,
			})
		}
	}

	files := form.File["files"]
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		opened = append(opened, f)
		cmd.Attachments = append(cmd.Attachments, usecases.AttachmentUpload{
			Name:   fh.Filename,
			Reader: f,
		})
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("failed to create ticket", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "ticket created")
}

func (h *TicketHandler) GetTicketDetail(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	view, err := h.getDetailUC.Execute(c.Request.Context(), usecases.GetTicketDetailQuery{
		TicketID: ticketID,
		UserID:   userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", view)
}

func (h *TicketHandler) ExecuteResult(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req executeResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for execute result", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.ExecuteResultCommand{
		TicketID: ticketID,
		ResultID: req.ResultID,
		UserID:   userID,
		Comment:  req.Comment,
	}
	if req.Billed != nil {
		cmd.Billing = &usecases.BillingInput{
			Billed:   *req.Billed,
			Currency: req.Currency,
			Amount:   req.Amount,
		}
	}

	if err := h.executeResultUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Warnw("failed to execute result",
			"ticket_id", ticketID,
			"result_id", req.ResultID,
			"user_id", userID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "result executed", nil)
}

func (h *TicketHandler) AddComment(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID: ticketID,
		UserID:   userID,
		Text:     req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "comment added")
}

func (h *TicketHandler) AddAttachment(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing file")
		return
	}

	f, err := fh.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.addAttachmentUC.Execute(c.Request.Context(), usecases.AddAttachmentCommand{
		TicketID: ticketID,
		UserID:   userID,
		Name:     fh.Filename,
		Reader:   f,
	})
	if err != nil {
		h.logger.Warnw("failed to add attachment",
			"ticket_id", ticketID,
			"user_id", userID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "attachment added")
}

// DownloadAttachment streams the stored file with its original name.
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "attachmentId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	download, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		TicketID:     ticketID,
		AttachmentID: attachmentID,
		UserID:       userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer download.Content.Close()

	contentType := download.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, download.Size, contentType, download.Content, map[string]string{
		"Content-Disposition": `attachment; filename="` + download.Name + `"`,
	})
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func formUint(form *multipart.Form, key string) uint {
	raw := formValue(form, key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
