package core

import (
	"context"

	"github.com/winnow-hq/winnow-api/internal/models"
)

// AuthClient wraps the auth provider: account creation on registration and
// bearer-token verification on every protected request.
type AuthClient interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (uid string, err error)
	VerifyIDToken(ctx context.Context, idToken string) (models.Claims, error)
}

// UserStore defines persistence for "users" documents, keyed by the auth
// provider's subject id.
type UserStore interface {
	Create(ctx context.Context, uid, email, nickname string) error
	Get(ctx context.Context, uid string) (map[string]interface{}, error)
	SyncExternalLogin(ctx context.Context, claims models.Claims) error
}

// JDStore defines persistence for "jds" documents. Update, Delete and
// AddAttachment enforce ownership; ListVisible applies the owner /
// collaborator-id / collaborator-email visibility merge.
type JDStore interface {
	Create(ctx context.Context, ownerUID string, jd *models.JobDescription) (id string, err error)
	Get(ctx context.Context, id string) (map[string]interface{}, error)
	ListVisible(ctx context.Context, uid, email string) ([]map[string]interface{}, error)
	Update(ctx context.Context, id, callerUID string, patch *models.JDPatch) error
	Delete(ctx context.Context, id, callerUID string) error
	AddAttachment(ctx context.Context, id, callerUID string, att models.Attachment) error
}

// ObjectClient defines interactions with the storage bucket. It's abstract
// so the GCS backing can be swapped or faked in tests.
type ObjectClient interface {
	UploadFile(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, key string) error
}

// ChatModel is one round-trip to the generative model: prior turns plus a
// new message in, reshaped structured reply out.
type ChatModel interface {
	Chat(ctx context.Context, history []models.ChatTurn, message string) (models.ChatReply, error)
}
