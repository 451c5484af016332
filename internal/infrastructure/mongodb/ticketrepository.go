package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	apperrors "remotcyberhelp/internal/shared/errors"
)

// TicketRepository implements ticket.Repository over two collections:
// tickets and their responses.
type TicketRepository struct {
	tickets   *mongo.Collection
	responses *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		tickets:   db.Collection(ticketsCollection),
		responses: db.Collection(responsesCollection),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if _, err := r.tickets.InsertOne(ctx, ticketToDocument(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("ticket number already exists", t.Number())
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	t.ClearChanges()
	return nil
}

// Update $sets only the changed attribute groups of the ticket.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	set := ticketUpdate(t)
	if set == nil {
		return nil
	}
	result, err := r.tickets.UpdateOne(ctx, bson.M{"_id": t.ID()}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	t.ClearChanges()
	return nil
}

// Delete removes the responses first and then the ticket. MongoDB
// deployments without replica sets have no transactions, so a failure in
// between leaves an empty thread behind, never orphaned responses.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	count, err := r.tickets.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to find ticket: %w", err)
	}
	if count == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	if _, err := r.responses.DeleteMany(ctx, bson.M{"ticket_id": id}); err != nil {
		return fmt.Errorf("failed to delete ticket responses: %w", err)
	}
	if _, err := r.tickets.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return r.getOne(ctx, bson.M{"ticket_number": strings.ToUpper(strings.TrimSpace(number))})
}

func (r *TicketRepository) getOne(ctx context.Context, filter bson.M) (*ticket.Ticket, error) {
	var doc ticketDocument
	if err := r.tickets.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	t, err := doc.toDomain()
	if err != nil {
		return nil, err
	}

	cursor, err := r.responses.Find(ctx, bson.M{"ticket_id": t.ID()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	var docs []responseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}
	responses := make([]*ticket.Response, len(docs))
	for i := range docs {
		responses[i] = docs[i].toDomain()
	}
	t.AttachResponses(responses)
	return t, nil
}

func (r *TicketRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	count, err := r.tickets.CountDocuments(ctx, bson.M{"ticket_number": number}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check ticket number: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	q := bson.M{}
	var and bson.A

	if filter.Status != nil {
		q["status"] = filter.Status.String()
	}
	if filter.Priority != nil {
		q["priority"] = filter.Priority.String()
	}
	if filter.Category != nil {
		q["category"] = filter.Category.String()
	}
	if filter.AssignedTo != "" {
		q["assigned_to"] = filter.AssignedTo
	}
	if filter.Escalated != nil {
		q["escalated"] = *filter.Escalated
	}
	if filter.OwnerID != "" || filter.OwnerEmail != "" {
		owner := bson.A{}
		if filter.OwnerID != "" {
			owner = append(owner, bson.M{"user_id": filter.OwnerID})
		}
		if filter.OwnerEmail != "" {
			owner = append(owner, bson.M{"email": strings.ToLower(filter.OwnerEmail)})
		}
		and = append(and, bson.M{"$or": owner})
	}
	if or := searchClause(filter.Search, "ticket_number", "subject", "description", "email"); or != nil {
		and = append(and, bson.M{"$or": or})
	}
	if len(and) > 0 {
		q["$and"] = and
	}

	total, err := r.tickets.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	opts := findOptions(filter.BaseFilter, ticket.SortableFields, bson.D{{Key: "created_at", Value: -1}})
	tickets, err := r.find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListForStats(ctx context.Context, filter ticket.StatsFilter) ([]*ticket.Ticket, error) {
	q := bson.M{}
	created := bson.M{}
	if filter.From != nil {
		created["$gte"] = filter.From.UTC()
	}
	if filter.To != nil {
		created["$lte"] = filter.To.UTC()
	}
	if len(created) > 0 {
		q["created_at"] = created
	}
	if filter.AssignedTo != "" {
		q["assigned_to"] = filter.AssignedTo
	}
	return r.find(ctx, q, options.Find())
}

func (r *TicketRepository) ListAttentionCandidates(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error) {
	q := bson.M{
		"status": bson.M{"$nin": bson.A{vo.StatusResolved.String(), vo.StatusClosed.String()}},
		"$or": bson.A{
			bson.M{"priority": vo.PriorityCritical.String()},
			bson.M{
				"created_at": bson.M{"$lt": cutoff.UTC()},
				"$or": bson.A{
					bson.M{"priority": vo.PriorityHigh.String()},
					bson.M{"status": vo.StatusOpen.String()},
				},
			},
		},
	}
	return r.find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *TicketRepository) AddResponse(ctx context.Context, resp *ticket.Response) error {
	if _, err := r.responses.InsertOne(ctx, responseToDocument(resp)); err != nil {
		return fmt.Errorf("failed to save ticket response: %w", err)
	}
	return nil
}

func (r *TicketRepository) CountResponses(ctx context.Context, ticketID string) (int64, error) {
	count, err := r.responses.CountDocuments(ctx, bson.M{"ticket_id": ticketID})
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.tickets.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *TicketRepository) RewriteCategory(ctx context.Context, from string, to vo.Category) (int64, error) {
	result, err := r.tickets.UpdateMany(ctx,
		bson.M{"category": from},
		bson.M{"$set": bson.M{"category": to.String()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rewrite category %q: %w", from, err)
	}
	return result.ModifiedCount, nil
}

func (r *TicketRepository) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]*ticket.Ticket, error) {
	cursor, err := r.tickets.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	var docs []ticketDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	out := make([]*ticket.Ticket, len(docs))
	for i := range docs {
		t, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
