package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// MongoAccountRepository keeps one collection per role, mirroring the three
// independent account stores. Usernames therefore collide only within a role.
type MongoAccountRepository struct {
	db *mongo.Database
}

var _ ports.AccountRepository = (*MongoAccountRepository)(nil)

func NewMongoAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{db: db}
}

func collectionFor(role domain.Role) string {
	switch role {
	case domain.RoleDepartmentHead:
		return "hods"
	case domain.RoleWarden:
		return "wardens"
	default:
		return "students"
	}
}

func (r *MongoAccountRepository) FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.Account, error) {
	return r.findOne(ctx, role, bson.M{"username": username})
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	return r.findOne(ctx, role, bson.M{"_id": id})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, role domain.Role, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	err := r.db.Collection(collectionFor(role)).FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Collection(collectionFor(account.Role)).InsertOne(ctx, account)
	return err
}

func (r *MongoAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.db.Collection(collectionFor(account.Role)).
		ReplaceOne(ctx, bson.M{"_id": account.ID}, account)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
