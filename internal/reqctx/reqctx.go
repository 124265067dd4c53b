// internal/reqctx/reqctx.go
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type key int

const (
	keyRequestID key = iota
	keyUser
)

// User — аутентифицированный пользователь текущего запроса.
type User struct {
	ID    uuid.UUID
	Email string
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, keyUser, u)
}

func UserFrom(ctx context.Context) (User, bool) {
	v, ok := ctx.Value(keyUser).(User)
	return v, ok
}
