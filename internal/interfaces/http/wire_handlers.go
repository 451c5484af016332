package http

import (
	"remotcyberhelp/internal/interfaces/http/handlers"
	ticketHandlers "remotcyberhelp/internal/interfaces/http/handlers/ticket"
)

type allHandlers struct {
	health       *handlers.HealthHandler
	auth         *handlers.AuthHandler
	users        *handlers.UserHandler
	ticket       *ticketHandlers.TicketHandler
	contact      *handlers.ContactHandler
	consultation *handlers.ConsultationHandler
	blog         *handlers.BlogHandler
	government   *handlers.GovernmentHandler
	workingHours *handlers.WorkingHoursHandler
	newsletter   *handlers.NewsletterHandler
	dashboard    *handlers.DashboardHandler
}

func newHandlers(c *Container) *allHandlers {
	log := c.log
	t := c.ucs.ticket
	u := c.ucs.user
	s := c.ucs.site

	return &allHandlers{
		health: handlers.NewHealthHandler(c.cfg.Server.Environment),
		auth: handlers.NewAuthHandler(handlers.AuthUseCases{
			Register:        u.register,
			Login:           u.login,
			Refresh:         u.refresh,
			GetMe:           u.getMe,
			ChangePassword:  u.changePassword,
			RequestReset:    u.requestReset,
			VerifyResetCode: u.verifyResetCode,
			ResetPassword:   u.resetPassword,
		}, log),
		users: handlers.NewUserHandler(handlers.UserUseCases{
			List:       u.listAccounts,
			ChangeRole: u.changeRole,
			Unlock:     u.unlock,
			SetActive:  u.setActive,
		}),
		ticket: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:    t.create,
			Get:       t.get,
			List:      t.list,
			Status:    t.status,
			Respond:   t.respond,
			Assign:    t.assign,
			Escalate:  t.escalate,
			Delete:    t.delete,
			Stats:     t.stats,
			Attention: t.attention,
			Assigned:  t.assigned,
		}, log),
		contact: handlers.NewContactHandler(handlers.ContactUseCases{
			Submit:       s.submitContact,
			List:         s.listContacts,
			UpdateStatus: s.contactStatus,
			Delete:       s.deleteContact,
		}),
		consultation: handlers.NewConsultationHandler(handlers.ConsultationUseCases{
			Book:         s.book,
			Availability: s.availability,
			List:         s.listConsults,
			UpdateStatus: s.consultStatus,
			Delete:       s.deleteConsult,
		}),
		blog: handlers.NewBlogHandler(handlers.BlogUseCases{
			List:       s.listPosts,
			Get:        s.getPost,
			Categories: s.categories,
			Create:     s.createPost,
			Update:     s.updatePost,
			Delete:     s.deletePost,
		}),
		government: handlers.NewGovernmentHandler(handlers.GovernmentUseCases{
			Services:     s.services,
			Submit:       s.submitRequest,
			Track:        s.trackRequest,
			List:         s.listRequests,
			UpdateStatus: s.requestStatus,
		}),
		workingHours: handlers.NewWorkingHoursHandler(s.schedule, s.updateSchedule, s.holidays),
		newsletter:   handlers.NewNewsletterHandler(s.subscribe, s.unsubscribe, s.subscribers),
		dashboard:    handlers.NewDashboardHandler(c.ucs.dashboard, log),
	}
}
