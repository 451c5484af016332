package ticket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/utils"
)

type createTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.CreatedTicketDTO, error)
}

type getTicketUseCase interface {
	Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

type listTicketsUseCase interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type updateStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateStatusCommand) (*dto.TicketDTO, error)
}

type addResponseUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddResponseCommand) (*dto.ResponseDTO, error)
}

type assignTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
}

type escalateTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.EscalateTicketCommand) (*dto.TicketDTO, error)
}

type deleteTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type ticketStatsUseCase interface {
	Execute(ctx context.Context, q usecases.GetTicketStatsQuery) (*dto.StatsDTO, error)
}

type attentionUseCase interface {
	Execute(ctx context.Context, requester usecases.Requester) ([]*dto.TicketDTO, error)
}

type assignedTicketsUseCase interface {
	Execute(ctx context.Context, q usecases.GetAssignedTicketsQuery) (*usecases.ListTicketsResult, error)
}

// UseCases groups the ticket use cases the handler dispatches to.
type UseCases struct {
	Create    createTicketUseCase
	Get       getTicketUseCase
	List      listTicketsUseCase
	Status    updateStatusUseCase
	Respond   addResponseUseCase
	Assign    assignTicketUseCase
	Escalate  escalateTicketUseCase
	Delete    deleteTicketUseCase
	Stats     ticketStatsUseCase
	Attention attentionUseCase
	Assigned  assignedTicketsUseCase
}

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{uc: uc, logger: logger}
}

// CreateTicket godoc
// @Summary      Open a support ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body CreateTicketRequest true "Ticket"
// @Success      201 {object} utils.APIResponse{data=dto.CreatedTicketDTO}
// @Failure      400 {object} utils.APIResponse
// @Failure      429 {object} utils.APIResponse
// @Router       /support/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /support/ticket/:id. The id may be the ticket number.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Ref:       c.Param("id"),
		Requester: common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets godoc
// @Summary      List tickets
// @Description  Admins see every ticket, customers only their own.
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        status query string false "Status filter"
// @Param        priority query string false "Priority filter"
// @Param        category query string false "Category filter"
// @Param        search query string false "Free text"
// @Success      200 {object} utils.APIResponse{data=TicketListResponse}
// @Router       /support/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	result, err := h.uc.List.Execute(c.Request.Context(), parseListTicketsQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	writeTicketList(c, result)
}

// UpdateStatus handles PATCH /support/ticket/:id/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Status.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		Ref:        c.Param("id"),
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		AssignedTo: req.AssignedTo,
		Requester:  common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", result)
}

// AddResponse handles POST /support/ticket/:id/response
func (h *TicketHandler) AddResponse(c *gin.Context) {
	var req AddResponseRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Respond.Execute(c.Request.Context(), usecases.AddResponseCommand{
		Ref:         c.Param("id"),
		Message:     req.Message,
		Attachments: req.Attachments,
		Requester:   common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Response added")
}

// AssignTicket handles PATCH /support/ticket/:id/assign. An empty body
// assigns the ticket to the caller.
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	var req AssignTicketRequest
	if c.Request.ContentLength > 0 {
		if err := common.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Ref:       c.Param("id"),
		AdminID:   req.AdminID,
		Requester: common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned", result)
}

// EscalateTicket handles POST /support/ticket/:id/escalate
func (h *TicketHandler) EscalateTicket(c *gin.Context) {
	var req EscalateTicketRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Escalate.Execute(c.Request.Context(), usecases.EscalateTicketCommand{
		Ref:       c.Param("id"),
		Reason:    req.Reason,
		Requester: common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket escalated", result)
}

// DeleteTicket handles DELETE /support/ticket/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Ref:       c.Param("id"),
		Requester: common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted", nil)
}

// GetStats handles GET /support/admin/stats?from=&to=&assignedTo=
func (h *TicketHandler) GetStats(c *gin.Context) {
	result, err := h.uc.Stats.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{
		From:       c.Query("from"),
		To:         c.Query("to"),
		AssignedTo: c.Query("assignedTo"),
		Requester:  common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetAttentionRequired handles GET /support/admin/attention
func (h *TicketHandler) GetAttentionRequired(c *gin.Context) {
	result, err := h.uc.Attention.Execute(c.Request.Context(), common.Requester(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"tickets": result, "count": len(result)})
}

// GetAssignedTickets handles GET /support/admin/assigned/:adminId
func (h *TicketHandler) GetAssignedTickets(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.uc.Assigned.Execute(c.Request.Context(), usecases.GetAssignedTicketsQuery{
		AdminID:   c.Param("adminId"),
		Page:      p.Page,
		PageSize:  p.Limit,
		Requester: common.Requester(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	writeTicketList(c, result)
}
