package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"remotcyberhelp/internal/shared/logger"
)

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, err := NewEnforcer(nil, logger.NewNopLogger())
	require.NoError(t, err)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"user", ResourceTicket, ActionCreate, true},
		{"user", ResourceTicket, "respond", true},
		{"user", ResourceTicket, ActionDelete, false},
		{"user", ResourceDashboard, ActionRead, false},
		{"admin", ResourceTicket, ActionDelete, true},
		{"admin", ResourceBlog, ActionUpdate, true},
		{"admin", ResourceUser, "unlock", true},
		{"admin", ResourceUser, "change_role", false},
		{"super_admin", ResourceUser, "change_role", true},
		{"super_admin", ResourceDashboard, ActionRead, true},
		{"super_admin", ResourceTicket, ActionCreate, true},
		{"guest", ResourceTicket, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforcer_PersistsPolicies(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.AddPolicy("user", ResourceNewsletter, ActionRead))

	// A second enforcer over the same table sees the stored rules once and
	// does not duplicate the defaults.
	again, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)

	ok, err := again.Enforce("user", ResourceNewsletter, ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)

	policies, err := again.Policies()
	require.NoError(t, err)
	assert.Len(t, policies, len(defaultPolicies)+1)

	require.NoError(t, again.RemovePolicy("user", ResourceNewsletter, ActionRead))
	ok, err = again.Enforce("user", ResourceNewsletter, ActionRead)
	require.NoError(t, err)
	assert.False(t, ok)
}
