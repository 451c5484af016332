package permission

// Resources guarded by RequirePermission.
const (
	ResourceTicket       = "ticket"
	ResourceContact      = "contact"
	ResourceConsultation = "consultation"
	ResourceBlog         = "blog"
	ResourceGovernment   = "government"
	ResourceWorkingHours = "working_hours"
	ResourceNewsletter   = "newsletter"
	ResourceDashboard    = "dashboard"
	ResourceUser         = "user"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionManage = "manage"

	ActionRespond    = "respond"
	ActionAssign     = "assign"
	ActionEscalate   = "escalate"
	ActionUnlock     = "unlock"
	ActionChangeRole = "change_role"
)

var defaultPolicies = [][]string{
	// Customers act on their own tickets; ownership is checked in the use case.
	{"user", ResourceTicket, ActionRead},
	{"user", ResourceTicket, ActionCreate},
	{"user", ResourceTicket, ActionRespond},

	{"admin", ResourceTicket, "*"},
	{"admin", ResourceContact, "*"},
	{"admin", ResourceConsultation, "*"},
	{"admin", ResourceBlog, "*"},
	{"admin", ResourceGovernment, "*"},
	{"admin", ResourceWorkingHours, "*"},
	{"admin", ResourceNewsletter, "*"},
	{"admin", ResourceDashboard, ActionRead},
	{"admin", ResourceUser, ActionRead},
	{"admin", ResourceUser, ActionUnlock},

	// Role changes are reserved.
	{"super_admin", ResourceUser, "*"},
}

// defaultInheritance lists (role, inherited role) pairs.
var defaultInheritance = [][2]string{
	{"admin", "user"},
	{"super_admin", "admin"},
}
