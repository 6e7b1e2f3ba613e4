package auth

import (
	"context"
)

type userKeyType struct{}

var userKey userKeyType

// User is the acting staff identity attached to every mutating call.
// Authentication proper is out of scope; the identity middleware fills
// this from a header or falls back to the stub actor.
type User struct {
	Username string
}

// StubUsername is the placeholder actor used when no identity is supplied.
const StubUsername = "staff"

func UserFromContext(ctx context.Context) (User, bool) {
	val := ctx.Value(userKey)
	if val == nil {
		return User{}, false
	}
	return val.(User), true
}

// MustHaveUser returns the user from the context, falling back to the
// stub actor. Handlers rely on the identity middleware having run.
func MustHaveUser(ctx context.Context) User {
	if u, found := UserFromContext(ctx); found {
		return u
	}
	return User{Username: StubUsername}
}

func NewContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
