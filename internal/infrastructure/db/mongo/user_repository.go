package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col: db.Collection(collectionUsers),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Roles     string             `bson:"roles"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (mu mongoUser) toDomain() *domain.User {
	role := mu.Roles
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.Password,
		Role:         role,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

// EnsureIndexes creates the unique indexes on email and username.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}

// FindByIdentifier matches on email before username.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": identifier})
	if errors.Is(err, domain.ErrUserNotFound) {
		return r.findOne(ctx, bson.M{"username": identifier})
	}
	return user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	defer observe(collectionUsers, "read", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	defer observe(collectionUsers, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Roles:     user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if conflict := userConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	defer observe(collectionUsers, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": r.now()}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		set["password"] = *patch.PasswordHash
	}
	if patch.Role != nil {
		set["roles"] = *patch.Role
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if conflict := userConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) (*domain.User, error) {
	defer observe(collectionUsers, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOneAndDelete(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	defer observe(collectionUsers, "read", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// userConflict maps a duplicate key error to the matching domain error.
func userConflict(err error) error {
	switch duplicateKeyField(err, "email", "username") {
	case "email":
		return domain.ErrEmailExists
	case "username":
		return domain.ErrUsernameExists
	}
	return nil
}
