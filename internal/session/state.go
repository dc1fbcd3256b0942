package session

import (
	"context"

	"warbler/internal/models"
)

// State is the identity a request carries: Anonymous or Authenticated.
type State struct {
	User *models.User
}

// Anonymous is the state of a request without a valid session.
var Anonymous = State{}

// Authenticated reports whether the state carries a user.
func (s State) Authenticated() bool {
	return s.User != nil
}

// UserLookup is the slice of the user repository Resolve needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Resolver turns opaque tokens into request identity.
type Resolver struct {
	store Store
	users UserLookup
}

// NewResolver returns a Resolver over the given store and user lookup.
func NewResolver(store Store, users UserLookup) *Resolver {
	return &Resolver{store: store, users: users}
}

// Resolve maps a token to Anonymous or Authenticated(user). A missing
// or unknown token, a store error, or a user row that no longer exists
// all degrade to Anonymous; Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, token string) State {
	if token == "" {
		return Anonymous
	}
	userID, ok, err := r.store.Lookup(ctx, token)
	if err != nil || !ok {
		return Anonymous
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return Anonymous
	}
	return State{User: user}
}
