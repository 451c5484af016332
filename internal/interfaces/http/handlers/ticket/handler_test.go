package ticket

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/testutil"
	"remotcyberhelp/internal/shared/errors"
)

type mockCreateTicketUC struct {
	got    usecases.CreateTicketCommand
	result *ticketdto.CreatedTicketDTO
	err    error
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*ticketdto.CreatedTicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetTicketUC struct {
	got    usecases.GetTicketQuery
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, q usecases.GetTicketQuery) (*ticketdto.TicketDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockListTicketsUC struct {
	got    usecases.ListTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockListTicketsUC) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockUpdateStatusUC struct {
	got    usecases.UpdateStatusCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockUpdateStatusUC) Execute(_ context.Context, cmd usecases.UpdateStatusCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockAddResponseUC struct {
	result *ticketdto.ResponseDTO
	err    error
}

func (m *mockAddResponseUC) Execute(_ context.Context, _ usecases.AddResponseCommand) (*ticketdto.ResponseDTO, error) {
	return m.result, m.err
}

type mockAssignTicketUC struct {
	got    usecases.AssignTicketCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockAssignTicketUC) Execute(_ context.Context, cmd usecases.AssignTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockEscalateTicketUC struct {
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockEscalateTicketUC) Execute(_ context.Context, _ usecases.EscalateTicketCommand) (*ticketdto.TicketDTO, error) {
	return m.result, m.err
}

type mockDeleteTicketUC struct {
	err error
}

func (m *mockDeleteTicketUC) Execute(_ context.Context, _ usecases.DeleteTicketCommand) error {
	return m.err
}

type mockStatsUC struct {
	result *ticketdto.StatsDTO
	err    error
}

func (m *mockStatsUC) Execute(_ context.Context, _ usecases.GetTicketStatsQuery) (*ticketdto.StatsDTO, error) {
	return m.result, m.err
}

type mockAttentionUC struct {
	result []*ticketdto.TicketDTO
	err    error
}

func (m *mockAttentionUC) Execute(_ context.Context, _ usecases.Requester) ([]*ticketdto.TicketDTO, error) {
	return m.result, m.err
}

type mocks struct {
	create    *mockCreateTicketUC
	get       *mockGetTicketUC
	list      *mockListTicketsUC
	status    *mockUpdateStatusUC
	respond   *mockAddResponseUC
	assign    *mockAssignTicketUC
	escalate  *mockEscalateTicketUC
	del       *mockDeleteTicketUC
	stats     *mockStatsUC
	attention *mockAttentionUC
}

func newTestHandler() (*TicketHandler, *mocks) {
	m := &mocks{
		create:    &mockCreateTicketUC{},
		get:       &mockGetTicketUC{},
		list:      &mockListTicketsUC{},
		status:    &mockUpdateStatusUC{},
		respond:   &mockAddResponseUC{},
		assign:    &mockAssignTicketUC{},
		escalate:  &mockEscalateTicketUC{},
		del:       &mockDeleteTicketUC{},
		stats:     &mockStatsUC{},
		attention: &mockAttentionUC{},
	}
	h := NewTicketHandler(UseCases{
		Create:    m.create,
		Get:       m.get,
		List:      m.list,
		Status:    m.status,
		Respond:   m.respond,
		Assign:    m.assign,
		Escalate:  m.escalate,
		Delete:    m.del,
		Stats:     m.stats,
		Attention: m.attention,
		Assigned:  mockAssignedUC{},
	}, testutil.NewMockLogger())
	return h, m
}

type mockAssignedUC struct{}

func (mockAssignedUC) Execute(_ context.Context, q usecases.GetAssignedTicketsQuery) (*usecases.ListTicketsResult, error) {
	return &usecases.ListTicketsResult{Page: q.Page, Limit: q.PageSize}, nil
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	validBody := map[string]interface{}{
		"firstName":     "Jane",
		"lastName":      "Wanjiku",
		"phone":         "+254700000000",
		"description":   "Laptop won't boot",
		"issueCategory": "technical-issue",
	}

	tests := []struct {
		name       string
		body       interface{}
		ucErr      error
		wantStatus int
	}{
		{"success", validBody, nil, http.StatusCreated},
		{"missing required fields", map[string]interface{}{"firstName": "Jane"}, nil, http.StatusBadRequest},
		{"bad phone", map[string]interface{}{
			"firstName": "Jane", "phone": "abc", "description": "x", "issueCategory": "other",
		}, nil, http.StatusBadRequest},
		{"allocation failure", validBody, errors.NewAllocationError("Unable to generate a ticket number"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.create.result = &ticketdto.CreatedTicketDTO{TicketID: "RCH25010001", Status: "open", CreatedAt: time.Now()}
			m.create.err = tt.ucErr

			c, w := testutil.NewTestContext(http.MethodPost, "/api/support/tickets", tt.body)
			h.CreateTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, tt.wantStatus == http.StatusCreated, resp.Success)
		})
	}
}

func TestTicketHandler_CreateTicket_MapsCommand(t *testing.T) {
	h, m := newTestHandler()
	m.create.result = &ticketdto.CreatedTicketDTO{TicketID: "RCH25010001"}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/support/tickets", map[string]interface{}{
		"firstName":     "Jane",
		"lastName":      "Wanjiku",
		"phone":         "+254700000000",
		"description":   "Laptop won't boot",
		"issueCategory": "technical-issue",
		"priority":      "high",
	})
	testutil.SetAuthContext(c, "user-1", "jane@example.com", "user")
	h.CreateTicket(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Jane Wanjiku", m.create.got.CustomerName)
	assert.Equal(t, "technical-issue", m.create.got.Category)
	assert.Equal(t, "high", m.create.got.Priority)
	assert.Equal(t, "user-1", m.create.got.UserID)
	assert.Equal(t, "jane@example.com", m.create.got.Email)
}

func TestTicketHandler_GetTicket(t *testing.T) {
	h, m := newTestHandler()
	m.get.result = &ticketdto.TicketDTO{TicketID: "RCH25010001"}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/support/ticket/RCH25010001", nil)
	testutil.SetURLParam(c, "id", "RCH25010001")
	testutil.SetAuthContext(c, "user-1", "jane@example.com", "user")
	h.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RCH25010001", m.get.got.Ref)
	assert.Equal(t, "user-1", m.get.got.Requester.UserID)
}

func TestTicketHandler_GetTicket_Forbidden(t *testing.T) {
	h, m := newTestHandler()
	m.get.err = errors.NewForbiddenError("You do not have access to this ticket")

	c, w := testutil.NewTestContext(http.MethodGet, "/api/support/ticket/x", nil)
	testutil.SetURLParam(c, "id", "x")
	h.GetTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTicketHandler_ListTickets(t *testing.T) {
	h, m := newTestHandler()
	m.list.result = &usecases.ListTicketsResult{
		Tickets: []*ticketdto.TicketDTO{{TicketID: "RCH25010001"}, {TicketID: "RCH25010002"}},
		Total:   12,
		Page:    2,
		Limit:   2,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/support/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "2", "limit": "2", "status": "open", "escalated": "true"})
	testutil.SetAuthContext(c, "admin-1", "admin@example.com", "admin")
	h.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", m.list.got.Status)
	require.NotNil(t, m.list.got.Escalated)
	assert.True(t, *m.list.got.Escalated)
	assert.Equal(t, 2, m.list.got.Page)
	assert.Contains(t, w.Body.String(), `"totalPages":6`)
	assert.Contains(t, w.Body.String(), `"tickets":[{`)
	assert.NotContains(t, w.Body.String(), `"items"`)
}

func TestTicketHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		ucErr      error
		wantStatus int
	}{
		{"resolved", map[string]interface{}{"status": "resolved", "adminNotes": "fixed"}, nil, http.StatusOK},
		{"missing status", map[string]interface{}{}, nil, http.StatusBadRequest},
		{"not admin", map[string]interface{}{"status": "resolved"}, errors.NewForbiddenError("Admin access required"), http.StatusForbidden},
		{"invalid status", map[string]interface{}{"status": "done"}, errors.NewValidationError("invalid status"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.status.result = &ticketdto.TicketDTO{Status: "resolved"}
			m.status.err = tt.ucErr

			c, w := testutil.NewTestContext(http.MethodPatch, "/api/support/ticket/RCH25010001/status", tt.body)
			testutil.SetURLParam(c, "id", "RCH25010001")
			testutil.SetAuthContext(c, "admin-1", "admin@example.com", "admin")
			h.UpdateStatus(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTicketHandler_UpdateStatus_PassesNotes(t *testing.T) {
	h, m := newTestHandler()
	m.status.result = &ticketdto.TicketDTO{}

	c, _ := testutil.NewTestContext(http.MethodPatch, "/x", map[string]interface{}{"status": "on_hold", "adminNotes": "waiting on parts"})
	testutil.SetURLParam(c, "id", "RCH25010001")
	h.UpdateStatus(c)

	require.NotNil(t, m.status.got.AdminNotes)
	assert.Equal(t, "waiting on parts", *m.status.got.AdminNotes)
	assert.Equal(t, "RCH25010001", m.status.got.Ref)
}

func TestTicketHandler_AddResponse(t *testing.T) {
	h, m := newTestHandler()
	m.respond.result = &ticketdto.ResponseDTO{Message: "On it"}

	c, w := testutil.NewTestContext(http.MethodPost, "/x", map[string]interface{}{"message": "On it"})
	testutil.SetURLParam(c, "id", "RCH25010001")
	h.AddResponse(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/x", map[string]interface{}{})
	testutil.SetURLParam(c, "id", "RCH25010001")
	h.AddResponse(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_AssignTicket_EmptyBodyAssignsSelf(t *testing.T) {
	h, m := newTestHandler()
	m.assign.result = &ticketdto.TicketDTO{AssignedTo: "admin-1"}

	c, w := testutil.NewTestContext(http.MethodPatch, "/x", nil)
	testutil.SetURLParam(c, "id", "RCH25010001")
	testutil.SetAuthContext(c, "admin-1", "admin@example.com", "admin")
	h.AssignTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, m.assign.got.AdminID)
	assert.Equal(t, "admin-1", m.assign.got.Requester.UserID)
}

func TestTicketHandler_EscalateTicket_RequiresReason(t *testing.T) {
	h, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/x", map[string]interface{}{"reason": ""})
	testutil.SetURLParam(c, "id", "RCH25010001")
	h.EscalateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "reason", resp.Errors[0].Field)
}

func TestTicketHandler_DeleteTicket(t *testing.T) {
	h, m := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodDelete, "/x", nil)
	testutil.SetURLParam(c, "id", "RCH25010001")
	h.DeleteTicket(c)
	assert.Equal(t, http.StatusOK, w.Code)

	m.del.err = errors.NewNotFoundError("Ticket not found")
	c, w = testutil.NewTestContext(http.MethodDelete, "/x", nil)
	testutil.SetURLParam(c, "id", "RCH99999999")
	h.DeleteTicket(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketHandler_AdminReports(t *testing.T) {
	h, m := newTestHandler()
	m.stats.result = &ticketdto.StatsDTO{Total: 3, ResolvedCount: 1}
	m.attention.result = []*ticketdto.TicketDTO{{TicketID: "RCH25010001"}}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/support/admin/stats", nil)
	h.GetStats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolvedCount":1`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/support/admin/attention", nil)
	h.GetAttentionRequired(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/support/admin/assigned/admin-1", nil)
	testutil.SetURLParam(c, "adminId", "admin-1")
	h.GetAssignedTickets(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tickets":[]`)
}
