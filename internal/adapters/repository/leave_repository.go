package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const leaveCollection = "leave_requests"

type MongoLeaveRepository struct {
	db *mongo.Database
}

var _ ports.LeaveRepository = (*MongoLeaveRepository)(nil)

func NewMongoLeaveRepository(db *mongo.Database) *MongoLeaveRepository {
	return &MongoLeaveRepository{db: db}
}

func (r *MongoLeaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	_, err := r.db.Collection(leaveCollection).InsertOne(ctx, leave)
	return err
}

func (r *MongoLeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	var leave domain.LeaveRequest
	err := r.db.Collection(leaveCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&leave)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &leave, nil
}

func (r *MongoLeaveRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *MongoLeaveRepository) ListByDepartment(ctx context.Context, department string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"department": department})
}

func (r *MongoLeaveRepository) ListByHostel(ctx context.Context, hostel string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"hostel": hostel})
}

func (r *MongoLeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.db.Collection(leaveCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leaves []*domain.LeaveRequest
	if err := cur.All(ctx, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// ApplyReview records a track decision as a single-document update. The two
// tracks live in disjoint fields, so concurrent reviews on different tracks
// cannot clobber one another.
func (r *MongoLeaveRepository) ApplyReview(ctx context.Context, id string, upd ports.ReviewUpdate) error {
	set := bson.M{"updated_at": upd.ReviewedAt}
	switch upd.Track {
	case domain.TrackHostel:
		set["hostel_status"] = upd.Status
		set["hostel_reviewed_by"] = upd.ReviewerID
		set["hostel_reviewed_at"] = upd.ReviewedAt
	default:
		set["department_status"] = upd.Status
		set["department_reviewed_by"] = upd.ReviewerID
		set["department_reviewed_at"] = upd.ReviewedAt
	}

	res, err := r.db.Collection(leaveCollection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
