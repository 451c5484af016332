// Package seed loads the initial admin account, government catalogue and
// sample blog posts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	blogUsecases "remotcyberhelp/internal/application/blog/usecases"
	governmentUsecases "remotcyberhelp/internal/application/government/usecases"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/domain/user"
	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/logger"
)

type Data struct {
	Admin    *AdminSeed            `yaml:"admin"`
	Services []*government.Service `yaml:"government_services"`
	Posts    []PostSeed            `yaml:"blog_posts"`
}

type AdminSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type PostSeed struct {
	Title      string   `yaml:"title"`
	Excerpt    string   `yaml:"excerpt"`
	Content    string   `yaml:"content"`
	Category   string   `yaml:"category"`
	Tags       []string `yaml:"tags"`
	Author     string   `yaml:"author"`
	CoverImage string   `yaml:"cover_image"`
	Status     string   `yaml:"status"`
}

// Parse decodes a seed file. Unknown keys are rejected so typos surface early.
func Parse(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &d, nil
}

type Report struct {
	AdminCreated bool
	Services     int
	Posts        int
	SkippedPosts int
}

// Seeder is idempotent: existing admins and posts with the same slug are left alone.
type Seeder struct {
	users      user.Repository
	hasher     user.PasswordHasher
	catalogue  *governmentUsecases.SeedCatalogueUseCase
	posts      blog.Repository
	createPost *blogUsecases.CreatePostUseCase
	logger     logger.Interface
}

func NewSeeder(
	users user.Repository,
	hasher user.PasswordHasher,
	services government.ServiceRepository,
	posts blog.Repository,
	renderer blog.Renderer,
	log logger.Interface,
) *Seeder {
	return &Seeder{
		users:      users,
		hasher:     hasher,
		catalogue:  governmentUsecases.NewSeedCatalogueUseCase(services, log),
		posts:      posts,
		createPost: blogUsecases.NewCreatePostUseCase(posts, renderer, log),
		logger:     log,
	}
}

func (s *Seeder) Run(ctx context.Context, d *Data) (*Report, error) {
	report := &Report{}

	if d.Admin != nil {
		created, err := s.seedAdmin(ctx, d.Admin)
		if err != nil {
			return nil, err
		}
		report.AdminCreated = created
	}

	services := d.Services
	if len(services) == 0 {
		services = government.DefaultCatalogue()
	}
	n, err := s.catalogue.Execute(ctx, services)
	if err != nil {
		return nil, fmt.Errorf("failed to seed government catalogue: %w", err)
	}
	report.Services = n

	for _, p := range d.Posts {
		exists, err := s.posts.ExistsBySlug(ctx, blog.Slugify(p.Title))
		if err != nil {
			return nil, err
		}
		if exists {
			report.SkippedPosts++
			continue
		}
		if _, err := s.createPost.Execute(ctx, blogUsecases.PostCommand{
			Title:      p.Title,
			Excerpt:    p.Excerpt,
			Content:    p.Content,
			Category:   p.Category,
			Tags:       p.Tags,
			Author:     p.Author,
			CoverImage: p.CoverImage,
			Status:     p.Status,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed post %q: %w", p.Title, err)
		}
		report.Posts++
	}

	return report, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, a *AdminSeed) (bool, error) {
	email, err := vo.NewEmail(a.Email)
	if err != nil {
		return false, fmt.Errorf("invalid admin email: %w", err)
	}
	exists, err := s.users.ExistsByEmail(ctx, email.String())
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Infow("admin account already exists, skipping", "email", email.String())
		return false, nil
	}

	password, err := vo.NewPassword(a.Password)
	if err != nil {
		return false, fmt.Errorf("invalid admin password: %w", err)
	}
	hash, err := s.hasher.Hash(password.String())
	if err != nil {
		return false, err
	}

	role := authorization.UserRole(strings.TrimSpace(a.Role))
	if role == "" {
		role = authorization.RoleSuperAdmin
	}
	if !role.IsAdmin() {
		return false, fmt.Errorf("seed admin role must be admin or super_admin, got %q", a.Role)
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = "Administrator"
	}
	account, err := user.NewAccount(email, name, hash, role, biztime.NowUTC())
	if err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, account); err != nil {
		return false, err
	}
	s.logger.Infow("admin account created", "email", email.String(), "role", role)
	return true, nil
}
