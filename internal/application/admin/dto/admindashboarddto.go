package dto

import ticketdto "remotcyberhelp/internal/application/ticket/dto"

// AdminDashboardResponse is the admin landing page snapshot.
type AdminDashboardResponse struct {
	Tickets     *ticketdto.StatsDTO `json:"tickets"`
	Attention   int                 `json:"attentionRequired"`
	Inbox       DashboardInbox      `json:"inbox"`
	Users       DashboardUsers      `json:"users"`
	Newsletter  DashboardNewsletter `json:"newsletter"`
	GeneratedAt string              `json:"generatedAt"`
}

// DashboardInbox counts the items waiting for an admin.
type DashboardInbox struct {
	NewContacts          int64 `json:"newContacts"`
	PendingConsultations int64 `json:"pendingConsultations"`
	PendingGovRequests   int64 `json:"pendingGovernmentRequests"`
}

type DashboardUsers struct {
	Total int64 `json:"total"`
}

type DashboardNewsletter struct {
	ActiveSubscribers int64 `json:"activeSubscribers"`
}
