package http

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/infrastructure/config"
	"remotcyberhelp/internal/infrastructure/mongodb"
	"remotcyberhelp/internal/infrastructure/repository"
	"remotcyberhelp/internal/shared/db"
	"remotcyberhelp/internal/shared/logger"
)

const governmentBucket = "govreq"

// repositories groups every storage adapter the use cases depend on.
type repositories struct {
	tickets     ticket.Repository
	users       user.Repository
	counter     ticket.CounterStore
	tx          usecases.TxRunner
	contacts    contact.Repository
	consults    consultation.Repository
	posts       blog.Repository
	govServices government.ServiceRepository
	govRequests government.RequestRepository
	hours       workinghours.Repository
	subscribers newsletter.Repository
}

// newRepositories selects the ticket/account/counter adapters from
// storage.backend. Site content always lives in the SQL database.
func newRepositories(gdb *gorm.DB, mdb *mongo.Database, cfg *config.Config, log logger.Interface) (*repositories, error) {
	r := &repositories{
		contacts:    repository.NewContactRepository(gdb),
		consults:    repository.NewConsultationRepository(gdb),
		posts:       repository.NewBlogRepository(gdb),
		govServices: repository.NewGovernmentServiceRepository(gdb),
		govRequests: repository.NewGovernmentRequestRepository(gdb),
		hours:       repository.NewWorkingHoursRepository(gdb),
		subscribers: repository.NewNewsletterRepository(gdb),
	}

	switch cfg.Storage.Backend {
	case "mongo":
		if mdb == nil {
			return nil, fmt.Errorf("storage.backend=mongo requires a mongo connection")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
			return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		r.tickets = mongodb.NewTicketRepository(mdb)
		r.users = mongodb.NewAccountRepository(mdb)
		r.counter = mongodb.NewCounterStore(mdb)
		// Responses are appended atomically, so no transaction runner.
		r.tx = nil
		log.Infow("tickets and accounts stored in mongodb", "database", mdb.Name())
	case "sql", "":
		r.tickets = repository.NewTicketRepository(gdb)
		r.users = repository.NewUserRepository(gdb, log)
		r.counter = repository.NewCounterStore(gdb)
		r.tx = db.NewTransactionManager(gdb)
	default:
		return nil, fmt.Errorf("unknown storage.backend %q", cfg.Storage.Backend)
	}
	return r, nil
}

func newGovernmentAllocator(counter ticket.CounterStore, requests government.RequestRepository, cfg *config.Config) *ticket.NumberAllocator {
	return ticket.NewNumberAllocator(counter, government.ReferenceChecker{Repo: requests},
		ticket.WithPrefix(government.ReferencePrefix),
		ticket.WithBucket(governmentBucket),
		ticket.WithMaxAttempts(cfg.Tickets.MaxAttempts),
		ticket.WithBackoff(cfg.Tickets.Backoff()),
	)
}
