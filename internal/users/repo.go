package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/sift/pkg/errors"
	"github.com/nikmy/sift/pkg/filters"
	"github.com/nikmy/sift/pkg/filters/mongocond"
	"github.com/nikmy/sift/pkg/logger"
	"github.com/nikmy/sift/pkg/mongotools"
)

type API interface {
	Add(ctx context.Context, user User) (id string, err error)
	Select(ctx context.Context, input filters.Input) ([]User, error)
	Close(ctx context.Context) error
}

func New(ctx context.Context, log logger.Logger, cfg MongoConfig) (API, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts = opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	conds, err := mongocond.New(DocumentKeys, Filters)
	if err != nil {
		return nil, errors.WrapFail(err, "compile user filters")
	}

	return &mongoRepo{
		coll:  client.Database(cfg.Database).Collection(cfg.Collection),
		conds: conds,
		log:   log.With("users_repo"),
	}, nil
}

type mongoRepo struct {
	coll  *mongo.Collection
	conds *mongocond.Conds
	log   logger.Logger
}

func (m *mongoRepo) Add(ctx context.Context, user User) (string, error) {
	result, err := m.coll.InsertOne(ctx, user)
	if err != nil {
		return "", errors.WrapFail(err, "insert user")
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Error("bad inserted id type")
	}

	return oid.Hex(), nil
}

func (m *mongoRepo) Select(ctx context.Context, input filters.Input) ([]User, error) {
	where := m.conds.Where(input)
	if where == nil {
		// unconstrained: mongo wants an explicit empty document
		where = mongotools.All()
	}

	cur, err := m.coll.Find(ctx, where)
	if err != nil {
		return nil, errors.WrapFail(err, "select users")
	}

	selected, err := mongotools.DecodeAll[User](ctx, cur)
	if err != nil {
		return nil, errors.WrapFail(err, "decode users")
	}

	return selected, nil
}

func (m *mongoRepo) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
