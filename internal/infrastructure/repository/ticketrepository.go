package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(t)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("ticket number already exists", t.Number())
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	t.ClearChanges()
	return nil
}

// Update writes only the attribute groups the ticket reports as changed, so
// a reply recorded by one request cannot revert a status set by another.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	changes := t.Changes()
	if len(changes) == 0 {
		return nil
	}
	model := r.mapper.ToModel(t)
	columns := map[string]interface{}{"updated_at": model.UpdatedAt}
	for _, f := range changes {
		for col, val := range ticketColumns(f, model) {
			columns[col] = val
		}
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketModel{}).Where("id = ?", model.ID).Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	// RowsAffected may be 0 on MySQL when nothing changed, so it is not checked.
	t.ClearChanges()
	return nil
}

func ticketColumns(f ticket.Field, m *models.TicketModel) map[string]interface{} {
	switch f {
	case ticket.FieldStatus:
		return map[string]interface{}{"status": m.Status}
	case ticket.FieldInProgressAt:
		return map[string]interface{}{"in_progress_at": m.InProgressAt}
	case ticket.FieldResolvedAt:
		return map[string]interface{}{"resolved_at": m.ResolvedAt}
	case ticket.FieldClosedAt:
		return map[string]interface{}{"closed_at": m.ClosedAt}
	case ticket.FieldPriority:
		return map[string]interface{}{"priority": m.Priority}
	case ticket.FieldAssignment:
		return map[string]interface{}{"assigned_to": m.AssignedTo, "assigned_at": m.AssignedAt}
	case ticket.FieldEscalation:
		return map[string]interface{}{
			"escalated":         m.Escalated,
			"escalation_reason": m.EscalationReason,
			"escalated_by":      m.EscalatedBy,
			"escalated_at":      m.EscalatedAt,
		}
	case ticket.FieldLastResponseAt:
		return map[string]interface{}{"last_response_at": m.LastResponseAt}
	case ticket.FieldAdminNotes:
		return map[string]interface{}{"admin_notes": m.AdminNotes}
	case ticket.FieldCategory:
		return map[string]interface{}{"category": m.Category}
	}
	return nil
}

// Delete removes responses first, then the ticket, in one transaction.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketResponseModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket responses: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.TicketModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("ticket not found")
		}
		return nil
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return r.getOne(ctx, "ticket_number = ?", strings.ToUpper(strings.TrimSpace(number)))
}

func (r *TicketRepository) getOne(ctx context.Context, cond string, arg interface{}) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}
	if err := r.loadResponses(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TicketRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).Where("ticket_number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket number: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Escalated != nil {
		query = query.Where("escalated = ?", *filter.Escalated)
	}
	if filter.OwnerID != "" || filter.OwnerEmail != "" {
		query = query.Where("((user_id <> '' AND user_id = ?) OR (email <> '' AND LOWER(email) = ?))",
			filter.OwnerID, strings.ToLower(filter.OwnerEmail))
	}
	query = query.Scopes(db.Search(filter.Search, "ticket_number", "subject", "description", "email"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []models.TicketModel
	if err := query.
		Order(filter.OrderClause(ticket.SortableFields, "created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListForStats(ctx context.Context, filter ticket.StatsFilter) ([]*ticket.Ticket, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To.UTC())
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}

	var rows []models.TicketModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load tickets for stats: %w", err)
	}
	return r.toDomainList(rows)
}

func (r *TicketRepository) ListAttentionCandidates(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error) {
	var rows []models.TicketModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status NOT IN ?", []string{vo.StatusResolved.String(), vo.StatusClosed.String()}).
		Where("(priority = ? OR ((priority = ? OR status = ?) AND created_at < ?))",
			vo.PriorityCritical.String(), vo.PriorityHigh.String(), vo.StatusOpen.String(), cutoff.UTC()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attention tickets: %w", err)
	}
	return r.toDomainList(rows)
}

func (r *TicketRepository) AddResponse(ctx context.Context, resp *ticket.Response) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ResponseToModel(resp)).Error; err != nil {
		return fmt.Errorf("failed to save ticket response: %w", err)
	}
	return nil
}

func (r *TicketRepository) CountResponses(ctx context.Context, ticketID string) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketResponseModel{}).Where("ticket_id = ?", ticketID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).Distinct().Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *TicketRepository) RewriteCategory(ctx context.Context, from string, to vo.Category) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketModel{}).
		Where("category = ?", from).
		Update("category", to.String())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to rewrite category %q: %w", from, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TicketRepository) loadResponses(ctx context.Context, t *ticket.Ticket) error {
	var rows []models.TicketResponseModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", t.ID()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load responses: %w", err)
	}

	responses := make([]*ticket.Response, len(rows))
	for i := range rows {
		responses[i] = r.mapper.ResponseToDomain(&rows[i])
	}
	t.AttachResponses(responses)
	return nil
}

func (r *TicketRepository) toDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}
