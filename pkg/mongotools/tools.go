package mongotools

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/sift/pkg/errors"
)

// All matches every document.
func All() bson.M {
	return bson.M{}
}

// DecodeAll drains the cursor into a slice and closes it.
func DecodeAll[T any](ctx context.Context, c *mongo.Cursor) ([]T, error) {
	defer c.Close(ctx)

	var items []T
	for c.Next(ctx) {
		var item T

		err := c.Decode(&item)
		if err != nil {
			return nil, errors.WrapFail(err, "decode item")
		}

		items = append(items, item)
	}

	return items, c.Err()
}
