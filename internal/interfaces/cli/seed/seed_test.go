package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/infrastructure/auth"
	"remotcyberhelp/internal/infrastructure/migration"
	"remotcyberhelp/internal/infrastructure/repository"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/services/markdown"
)

const sampleSeed = `
admin:
  email: owner@example.com
  name: Site Owner
  password: changeme123
government_services:
  - code: kra-pin
    name: KRA PIN Registration
    description: Register a PIN.
    category: tax
    fee: 500
    processing_days: 1
    requirements: [National ID]
    active: true
blog_posts:
  - title: Five Phishing Signs
    content: "Check the **sender** first."
    category: Security
    tags: [phishing, email]
    status: published
`

type fixture struct {
	seeder   *Seeder
	users    *repository.UserRepository
	services *repository.GovernmentServiceRepository
	posts    *repository.BlogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))

	log := logger.NewNopLogger()
	f := &fixture{
		users:    repository.NewUserRepository(gdb, log),
		services: repository.NewGovernmentServiceRepository(gdb),
		posts:    repository.NewBlogRepository(gdb),
	}
	f.seeder = NewSeeder(f.users, auth.NewBcryptPasswordHasher(4), f.services, f.posts, markdown.NewRenderer(), log)
	return f
}

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	require.NotNil(t, d.Admin)
	assert.Equal(t, "owner@example.com", d.Admin.Email)
	require.Len(t, d.Services, 1)
	assert.Equal(t, 1, d.Services[0].ProcessingDays)
	require.Len(t, d.Posts, 1)
	assert.Equal(t, []string{"phishing", "email"}, d.Posts[0].Tags)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("admins:\n  email: x@example.com\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	d, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, d.Admin)
	assert.Empty(t, d.Posts)
}

func TestSeeder_Run(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	report, err := f.seeder.Run(ctx, d)
	require.NoError(t, err)
	assert.True(t, report.AdminCreated)
	assert.Equal(t, 1, report.Services)
	assert.Equal(t, 1, report.Posts)
	assert.Zero(t, report.SkippedPosts)

	admin, err := f.users.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleSuperAdmin, admin.Role())

	post, err := f.posts.GetBySlug(ctx, "five-phishing-signs")
	require.NoError(t, err)
	assert.Equal(t, "Five Phishing Signs", post.Title())

	t.Run("second run is a no-op for admin and posts", func(t *testing.T) {
		again, err := f.seeder.Run(ctx, d)
		require.NoError(t, err)
		assert.False(t, again.AdminCreated)
		assert.Zero(t, again.Posts)
		assert.Equal(t, 1, again.SkippedPosts)
	})
}

func TestSeeder_DefaultCatalogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.seeder.Run(ctx, &Data{})
	require.NoError(t, err)
	assert.Equal(t, len(government.DefaultCatalogue()), report.Services)
	assert.False(t, report.AdminCreated)

	listed, err := f.services.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listed, report.Services)
}

func TestSeeder_AdminValidation(t *testing.T) {
	tests := []struct {
		name  string
		admin AdminSeed
	}{
		{"bad email", AdminSeed{Email: "not-an-email", Password: "changeme123"}},
		{"weak password", AdminSeed{Email: "a@example.com", Password: "short"}},
		{"non-admin role", AdminSeed{Email: "a@example.com", Password: "changeme123", Role: "user"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			admin := tt.admin
			_, err := f.seeder.Run(context.Background(), &Data{Admin: &admin})
			assert.Error(t, err)
		})
	}
}
