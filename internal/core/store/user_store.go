package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

const usersCollection = "users"

// FirestoreUserStore keeps "users" documents keyed by the auth provider's
// subject id.
type FirestoreUserStore struct {
	fs *firestore.Client
}

func NewFirestoreUserStore(fs *firestore.Client) *FirestoreUserStore {
	return &FirestoreUserStore{fs: fs}
}

func (s *FirestoreUserStore) Create(ctx context.Context, uid, email, nickname string) error {
	_, err := s.fs.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"email":     email,
		"nickname":  nickname,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create user doc: %w", err)
	}
	return nil
}

// Get returns (nil, nil) when no document exists for the uid; a registered
// auth account without a profile document is not an error.
func (s *FirestoreUserStore) Get(ctx context.Context, uid string) (map[string]interface{}, error) {
	snap, err := s.fs.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user doc: %w", err)
	}
	return snap.Data(), nil
}

// SyncExternalLogin creates the user document on first external sign-in and
// touches only lastLoginAt and photoURL on every later one. Nickname and
// email are never overwritten once set.
func (s *FirestoreUserStore) SyncExternalLogin(ctx context.Context, claims models.Claims) error {
	ref := s.fs.Collection(usersCollection).Doc(claims.UID)

	snap, err := ref.Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("lookup user doc: %w", err)
	}

	if err != nil || !snap.Exists() {
		_, err = ref.Set(ctx, map[string]interface{}{
			"email":     claims.Email,
			"nickname":  models.DisplayName(claims),
			"photoURL":  claims.Picture,
			"provider":  "google",
			"createdAt": firestore.ServerTimestamp,
		})
		if err != nil {
			return fmt.Errorf("create user doc: %w", err)
		}
		return nil
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: firestore.ServerTimestamp},
		{Path: "photoURL", Value: claims.Picture},
	})
	if err != nil {
		return fmt.Errorf("update user doc: %w", err)
	}
	return nil
}

var _ core.UserStore = (*FirestoreUserStore)(nil)
