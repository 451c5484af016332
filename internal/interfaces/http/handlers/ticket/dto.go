package ticket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ticketdto "remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type CreateTicketRequest struct {
	FirstName     string                 `json:"firstName" validate:"required,max=100"`
	LastName      string                 `json:"lastName" validate:"omitempty,max=100"`
	Phone         string                 `json:"phone" validate:"required,phone"`
	Email         string                 `json:"email" validate:"omitempty,email,max=254"`
	Subject       string                 `json:"subject" validate:"omitempty,max=200"`
	Description   string                 `json:"description" validate:"required,max=5000"`
	IssueCategory string                 `json:"issueCategory" validate:"required,max=100"`
	Priority      string                 `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(c *gin.Context) usecases.CreateTicketCommand {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	email := r.Email
	requester := common.Requester(c)
	if email == "" {
		email = requester.Email
	}
	return usecases.CreateTicketCommand{
		Subject:      r.Subject,
		Description:  r.Description,
		Category:     r.IssueCategory,
		Priority:     r.Priority,
		CustomerName: name,
		Phone:        r.Phone,
		Email:        email,
		UserID:       requester.UserID,
		Metadata:     r.Metadata,
	}
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	AdminNotes *string `json:"adminNotes" validate:"omitempty,max=5000"`
	AssignedTo string  `json:"assignedTo"`
}

type AddResponseRequest struct {
	Message     string              `json:"message" validate:"required,max=10000"`
	Attachments []ticket.Attachment `json:"attachments" validate:"omitempty,max=10"`
}

type AssignTicketRequest struct {
	AdminID string `json:"adminId"`
}

type EscalateTicketRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

func parseListTicketsQuery(c *gin.Context) usecases.ListTicketsQuery {
	p := utils.ParsePagination(c)
	return usecases.ListTicketsQuery{
		Page:       p.Page,
		PageSize:   p.Limit,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Category:   c.Query("category"),
		AssignedTo: c.Query("assignedTo"),
		Escalated:  common.QueryBool(c, "escalated"),
		Search:     c.Query("search"),
		Requester:  common.Requester(c),
	}
}

// TicketListResponse is the data block of ticket list endpoints.
type TicketListResponse struct {
	Tickets    []*ticketdto.TicketDTO `json:"tickets"`
	Pagination utils.PaginationInfo   `json:"pagination"`
}

func writeTicketList(c *gin.Context, result *usecases.ListTicketsResult) {
	tickets := result.Tickets
	if tickets == nil {
		tickets = []*ticketdto.TicketDTO{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", TicketListResponse{
		Tickets:    tickets,
		Pagination: utils.NewPaginationInfo(result.Page, result.Limit, len(tickets), result.Total),
	})
}
