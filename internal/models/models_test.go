package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winnow-hq/winnow-api/internal/models"
)

func TestJDPatchChanges(t *testing.T) {
	t.Run("null and omitted fields are left out", func(t *testing.T) {
		var patch models.JDPatch
		err := json.Unmarshal([]byte(`{"title": null, "location": "NYC"}`), &patch)
		require.NoError(t, err)

		changes := patch.Changes()
		assert.Equal(t, map[string]interface{}{"location": "NYC"}, changes)
	})

	t.Run("explicit empty list is a real change", func(t *testing.T) {
		var patch models.JDPatch
		err := json.Unmarshal([]byte(`{"requirements": []}`), &patch)
		require.NoError(t, err)

		changes := patch.Changes()
		require.Contains(t, changes, "requirements")
		assert.Empty(t, changes["requirements"])
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		var patch models.JDPatch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
		assert.Empty(t, patch.Changes())
	})

	t.Run("collaborator lists pass through", func(t *testing.T) {
		var patch models.JDPatch
		err := json.Unmarshal([]byte(`{"collaboratorEmails":["A@ex.com"],"collaborators":[{"email":"A@ex.com"}]}`), &patch)
		require.NoError(t, err)

		changes := patch.Changes()
		assert.Equal(t, []string{"A@ex.com"}, changes["collaboratorEmails"])
		assert.Equal(t, []models.Collaborator{{Email: "A@ex.com"}}, changes["collaborators"])
	})
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "jane", models.EmailLocalPart("jane@example.com"))
	assert.Equal(t, "jane", models.EmailLocalPart("jane"))
	assert.Equal(t, "", models.EmailLocalPart(""))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", models.DisplayName(models.Claims{Name: "Jane Doe", Email: "jane@example.com"}))
	assert.Equal(t, "jane", models.DisplayName(models.Claims{Email: "jane@example.com"}))
}
