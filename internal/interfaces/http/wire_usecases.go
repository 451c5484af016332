package http

import (
	adminUsecases "remotcyberhelp/internal/application/admin/usecases"
	blogUsecases "remotcyberhelp/internal/application/blog/usecases"
	"remotcyberhelp/internal/application/common"
	consultationUsecases "remotcyberhelp/internal/application/consultation/usecases"
	contactUsecases "remotcyberhelp/internal/application/contact/usecases"
	governmentUsecases "remotcyberhelp/internal/application/government/usecases"
	newsletterUsecases "remotcyberhelp/internal/application/newsletter/usecases"
	ticketUsecases "remotcyberhelp/internal/application/ticket/usecases"
	userUsecases "remotcyberhelp/internal/application/user/usecases"
	workinghoursUsecases "remotcyberhelp/internal/application/workinghours/usecases"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/services/markdown"
)

type ticketUseCases struct {
	create     *ticketUsecases.CreateTicketUseCase
	get        *ticketUsecases.GetTicketUseCase
	list       *ticketUsecases.ListTicketsUseCase
	status     *ticketUsecases.UpdateStatusUseCase
	respond    *ticketUsecases.AddResponseUseCase
	assign     *ticketUsecases.AssignTicketUseCase
	escalate   *ticketUsecases.EscalateTicketUseCase
	delete     *ticketUsecases.DeleteTicketUseCase
	stats      *ticketUsecases.GetTicketStatsUseCase
	attention  *ticketUsecases.GetAttentionRequiredUseCase
	assigned   *ticketUsecases.GetAssignedTicketsUseCase
	normalizer *ticketUsecases.NormalizeCategoriesUseCase
}

type userUseCases struct {
	register          *userUsecases.RegisterUseCase
	login             *userUsecases.LoginUseCase
	refresh           *userUsecases.RefreshTokenUseCase
	getMe             *userUsecases.GetMeUseCase
	changePassword    *userUsecases.ChangePasswordUseCase
	requestReset      *userUsecases.RequestPasswordResetUseCase
	verifyResetCode   *userUsecases.VerifyResetCodeUseCase
	resetPassword     *userUsecases.ResetPasswordUseCase
	cleanupResetCodes *userUsecases.CleanupResetCodesUseCase
	listAccounts      *userUsecases.ListAccountsUseCase
	changeRole        *userUsecases.ChangeRoleUseCase
	unlock            *userUsecases.UnlockAccountUseCase
	setActive         *userUsecases.SetAccountActiveUseCase
}

type siteUseCases struct {
	submitContact  *contactUsecases.SubmitMessageUseCase
	listContacts   *contactUsecases.ListMessagesUseCase
	contactStatus  *contactUsecases.UpdateMessageStatusUseCase
	deleteContact  *contactUsecases.DeleteMessageUseCase
	book           *consultationUsecases.BookConsultationUseCase
	availability   *consultationUsecases.GetAvailabilityUseCase
	listConsults   *consultationUsecases.ListConsultationsUseCase
	consultStatus  *consultationUsecases.UpdateConsultationStatusUseCase
	deleteConsult  *consultationUsecases.DeleteConsultationUseCase
	listPosts      *blogUsecases.ListPostsUseCase
	getPost        *blogUsecases.GetPostUseCase
	categories     *blogUsecases.ListCategoriesUseCase
	createPost     *blogUsecases.CreatePostUseCase
	updatePost     *blogUsecases.UpdatePostUseCase
	deletePost     *blogUsecases.DeletePostUseCase
	services       *governmentUsecases.ListServicesUseCase
	submitRequest  *governmentUsecases.SubmitRequestUseCase
	trackRequest   *governmentUsecases.TrackRequestUseCase
	listRequests   *governmentUsecases.ListRequestsUseCase
	requestStatus  *governmentUsecases.UpdateRequestStatusUseCase
	schedule       *workinghoursUsecases.GetScheduleUseCase
	updateSchedule *workinghoursUsecases.UpdateScheduleUseCase
	holidays       *workinghoursUsecases.ManageHolidaysUseCase
	subscribe      *newsletterUsecases.SubscribeUseCase
	unsubscribe    *newsletterUsecases.UnsubscribeUseCase
	subscribers    *newsletterUsecases.ListSubscribersUseCase
}

type allUseCases struct {
	ticket    ticketUseCases
	user      userUseCases
	site      siteUseCases
	dashboard *adminUsecases.GetAdminDashboardUseCase
}

func newUseCases(c *Container) *allUseCases {
	cfg := c.cfg
	log := c.log
	r := c.repos
	prefix := cfg.Tickets.Prefix

	effects := ticketUsecases.NewEffects(c.mailer, c.events, c.metrics, log)
	bestEffort := common.NewBestEffort(log)

	t := ticketUseCases{
		create:     ticketUsecases.NewCreateTicketUseCase(r.tickets, c.allocator, cfg.Tickets.MaxAttempts, effects, log),
		get:        ticketUsecases.NewGetTicketUseCase(r.tickets, prefix, log),
		list:       ticketUsecases.NewListTicketsUseCase(r.tickets, log),
		status:     ticketUsecases.NewUpdateStatusUseCase(r.tickets, prefix, cfg.Tickets.StrictTransitions, effects, log),
		respond:    ticketUsecases.NewAddResponseUseCase(r.tickets, r.tx, prefix, effects, log),
		assign:     ticketUsecases.NewAssignTicketUseCase(r.tickets, prefix, effects, log),
		escalate:   ticketUsecases.NewEscalateTicketUseCase(r.tickets, prefix, effects, log),
		delete:     ticketUsecases.NewDeleteTicketUseCase(r.tickets, prefix, effects, log),
		stats:      ticketUsecases.NewGetTicketStatsUseCase(r.tickets, log),
		attention:  ticketUsecases.NewGetAttentionRequiredUseCase(r.tickets, cfg.Tickets.AttentionAge(), effects, log),
		assigned:   ticketUsecases.NewGetAssignedTicketsUseCase(r.tickets, log),
		normalizer: ticketUsecases.NewNormalizeCategoriesUseCase(r.tickets, log),
	}

	policy := user.SecurityPolicy{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration(),
	}
	u := userUseCases{
		register:          userUsecases.NewRegisterUseCase(r.users, c.hasher, c.jwtSvc, log),
		login:             userUsecases.NewLoginUseCase(r.users, c.hasher, c.jwtSvc, policy, log),
		refresh:           userUsecases.NewRefreshTokenUseCase(r.users, c.jwtSvc, log),
		getMe:             userUsecases.NewGetMeUseCase(r.users, log),
		changePassword:    userUsecases.NewChangePasswordUseCase(r.users, c.hasher, log),
		requestReset:      userUsecases.NewRequestPasswordResetUseCase(r.users, c.mailer, userUsecases.SixDigitCode, cfg.Auth.ResetCodeTTL(), log),
		verifyResetCode:   userUsecases.NewVerifyResetCodeUseCase(r.users, log),
		resetPassword:     userUsecases.NewResetPasswordUseCase(r.users, c.hasher, log),
		cleanupResetCodes: userUsecases.NewCleanupResetCodesUseCase(r.users, log),
		listAccounts:      userUsecases.NewListAccountsUseCase(r.users, log),
		changeRole:        userUsecases.NewChangeRoleUseCase(r.users, log),
		unlock:            userUsecases.NewUnlockAccountUseCase(r.users, log),
		setActive:         userUsecases.NewSetAccountActiveUseCase(r.users, log),
	}

	renderer := markdown.NewRenderer()
	s := siteUseCases{
		submitContact:  contactUsecases.NewSubmitMessageUseCase(r.contacts, c.mailer, bestEffort, log),
		listContacts:   contactUsecases.NewListMessagesUseCase(r.contacts, log),
		contactStatus:  contactUsecases.NewUpdateMessageStatusUseCase(r.contacts, log),
		deleteContact:  contactUsecases.NewDeleteMessageUseCase(r.contacts, log),
		book:           consultationUsecases.NewBookConsultationUseCase(r.consults, r.hours, c.mailer, bestEffort, log),
		availability:   consultationUsecases.NewGetAvailabilityUseCase(r.consults, r.hours, log),
		listConsults:   consultationUsecases.NewListConsultationsUseCase(r.consults, log),
		consultStatus:  consultationUsecases.NewUpdateConsultationStatusUseCase(r.consults, log),
		deleteConsult:  consultationUsecases.NewDeleteConsultationUseCase(r.consults, log),
		listPosts:      blogUsecases.NewListPostsUseCase(r.posts, log),
		getPost:        blogUsecases.NewGetPostUseCase(r.posts, log),
		categories:     blogUsecases.NewListCategoriesUseCase(r.posts),
		createPost:     blogUsecases.NewCreatePostUseCase(r.posts, renderer, log),
		updatePost:     blogUsecases.NewUpdatePostUseCase(r.posts, renderer, log),
		deletePost:     blogUsecases.NewDeletePostUseCase(r.posts, log),
		services:       governmentUsecases.NewListServicesUseCase(r.govServices, log),
		submitRequest:  governmentUsecases.NewSubmitRequestUseCase(r.govRequests, r.govServices, c.govRefs, cfg.Tickets.MaxAttempts, c.mailer, bestEffort, log),
		trackRequest:   governmentUsecases.NewTrackRequestUseCase(r.govRequests),
		listRequests:   governmentUsecases.NewListRequestsUseCase(r.govRequests, log),
		requestStatus:  governmentUsecases.NewUpdateRequestStatusUseCase(r.govRequests, log),
		schedule:       workinghoursUsecases.NewGetScheduleUseCase(r.hours),
		updateSchedule: workinghoursUsecases.NewUpdateScheduleUseCase(r.hours, log),
		holidays:       workinghoursUsecases.NewManageHolidaysUseCase(r.hours, log),
		subscribe:      newsletterUsecases.NewSubscribeUseCase(r.subscribers, c.mailer, bestEffort, log),
		unsubscribe:    newsletterUsecases.NewUnsubscribeUseCase(r.subscribers, log),
		subscribers:    newsletterUsecases.NewListSubscribersUseCase(r.subscribers, log),
	}

	dashboard := adminUsecases.NewGetAdminDashboardUseCase(adminUsecases.DashboardSources{
		Stats:         t.stats,
		Attention:     t.attention,
		Users:         r.users,
		Contacts:      r.contacts,
		Consultations: r.consults,
		Requests:      r.govRequests,
		Subscribers:   r.subscribers,
	}, log)

	return &allUseCases{ticket: t, user: u, site: s, dashboard: dashboard}
}
