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

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/authorization"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(usersCollection)}
}

func (r *AccountRepository) Create(ctx context.Context, a *user.Account) error {
	if _, err := r.coll.InsertOne(ctx, accountToDocument(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("an account with this email already exists")
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *user.Account) error {
	doc := accountToDocument(a)
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFoundError("account not found")
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	return r.getOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *AccountRepository) getOne(ctx context.Context, filter bson.M) (*user.Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return doc.toDomain()
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.Account, int64, error) {
	q := bson.M{}
	if filter.Role != "" {
		q["role"] = filter.Role
	}
	if or := searchClause(filter.Search, "email", "name"); or != nil {
		q["$or"] = or
	}

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	cursor, err := r.coll.Find(ctx, q, findOptions(filter.BaseFilter, user.SortableFields, bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode accounts: %w", err)
	}

	accounts := make([]*user.Account, len(docs))
	for i := range docs {
		a, err := docs[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		accounts[i] = a
	}
	return accounts, total, nil
}

func (r *AccountRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "email", bson.M{
		"role":   bson.M{"$in": bson.A{string(authorization.RoleAdmin), string(authorization.RoleSuperAdmin)}},
		"active": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list admin emails: %w", err)
	}
	emails := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			emails = append(emails, s)
		}
	}
	return emails, nil
}

func (r *AccountRepository) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"reset_code_expires_at": bson.M{"$lt": now.UTC()}},
		bson.M{"$unset": bson.M{"reset_code_hash": "", "reset_code_expires_at": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear reset codes: %w", err)
	}
	return result.ModifiedCount, nil
}
