package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

// AuthClient delegates account creation and token verification to Firebase
// Auth. No token is ever minted or inspected locally.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{client: client}
}

func (c *AuthClient) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := c.client.CreateUser(ctx, params)
	if err != nil {
		// Duplicate email and any other provider rejection surface the same
		// way: a generic client error with the provider's message.
		return "", apperror.Invalid(err.Error())
	}
	return record.UID, nil
}

// VerifyIDToken asks Firebase to validate the bearer token. Expired,
// malformed, revoked and wrong-audience tokens all collapse into a single
// unauthorized error.
func (c *AuthClient) VerifyIDToken(ctx context.Context, idToken string) (models.Claims, error) {
	token, err := c.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Claims{}, apperror.Unauthorized("Invalid authentication")
	}
	return flattenClaims(token), nil
}

// flattenClaims reduces the provider's open-ended claims map to the fixed
// fields this system cares about.
func flattenClaims(token *auth.Token) models.Claims {
	return models.Claims{
		UID:     token.UID,
		Email:   claimString(token.Claims, "email"),
		Name:    claimString(token.Claims, "name"),
		Picture: claimString(token.Claims, "picture"),
	}
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

var _ core.AuthClient = (*AuthClient)(nil)
