package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id string, fields map[string]interface{}) visibleDoc {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return visibleDoc{ID: id, Data: fields}
}

func TestMergeVisible(t *testing.T) {
	t.Run("owner role wins over collaborator membership", func(t *testing.T) {
		shared := doc("jd1", map[string]interface{}{"userId": "alice"})
		result, backfill := mergeVisible(
			[]visibleDoc{shared},
			[]visibleDoc{doc("jd1", map[string]interface{}{"userId": "alice"})},
			nil,
		)

		require.Len(t, result, 1)
		assert.Equal(t, "owner", result[0]["_role"])
		assert.Equal(t, "jd1", result[0]["id"])
		assert.Empty(t, backfill)
	})

	t.Run("collaborator-id match appears exactly once even with email match", func(t *testing.T) {
		result, backfill := mergeVisible(
			nil,
			[]visibleDoc{doc("jd2", nil)},
			[]visibleDoc{doc("jd2", nil)},
		)

		require.Len(t, result, 1)
		assert.Equal(t, "collaborator", result[0]["_role"])
		assert.Empty(t, backfill, "a doc already visible by uid must not be backfilled again")
	})

	t.Run("email-only match is tagged collaborator and marked for backfill", func(t *testing.T) {
		result, backfill := mergeVisible(
			[]visibleDoc{doc("own", nil)},
			nil,
			[]visibleDoc{doc("invited", nil)},
		)

		require.Len(t, result, 2)
		assert.Equal(t, "owner", result[0]["_role"])
		assert.Equal(t, "collaborator", result[1]["_role"])
		assert.Equal(t, map[string]bool{"invited": true}, backfill)
	})

	t.Run("priority order is stable across all three cases", func(t *testing.T) {
		result, backfill := mergeVisible(
			[]visibleDoc{doc("a", nil)},
			[]visibleDoc{doc("a", nil), doc("b", nil)},
			[]visibleDoc{doc("a", nil), doc("b", nil), doc("c", nil)},
		)

		require.Len(t, result, 3)
		assert.Equal(t, "owner", result[0]["_role"])
		assert.Equal(t, "b", result[1]["id"])
		assert.Equal(t, "collaborator", result[1]["_role"])
		assert.Equal(t, "c", result[2]["id"])
		assert.Equal(t, map[string]bool{"c": true}, backfill)
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		result, backfill := mergeVisible(nil, nil, nil)
		assert.Empty(t, result)
		assert.Empty(t, backfill)
	})
}

func TestStampCollaborators(t *testing.T) {
	t.Run("matches case-insensitively and stamps only unset entries", func(t *testing.T) {
		collabs := []interface{}{
			map[string]interface{}{"email": "Jane@Example.com"},
			map[string]interface{}{"email": "jane@example.com", "uid": "someone-else"},
			map[string]interface{}{"email": "other@example.com"},
		}

		updated := stampCollaborators(collabs, "JANE@example.COM", "uid-1")

		assert.True(t, updated)
		assert.Equal(t, "uid-1", collabs[0].(map[string]interface{})["uid"])
		assert.Equal(t, "someone-else", collabs[1].(map[string]interface{})["uid"])
		_, stamped := collabs[2].(map[string]interface{})["uid"]
		assert.False(t, stamped)
	})

	t.Run("no match changes nothing", func(t *testing.T) {
		collabs := []interface{}{
			map[string]interface{}{"email": "other@example.com"},
		}
		assert.False(t, stampCollaborators(collabs, "jane@example.com", "uid-1"))
	})

	t.Run("tolerates malformed entries", func(t *testing.T) {
		collabs := []interface{}{"not-a-map", nil, map[string]interface{}{"email": "jane@example.com"}}
		assert.True(t, stampCollaborators(collabs, "jane@example.com", "uid-1"))
	})
}

func TestOwnerOf(t *testing.T) {
	assert.Equal(t, "alice", ownerOf(map[string]interface{}{"userId": "alice"}))
	assert.Equal(t, "", ownerOf(map[string]interface{}{}))
	assert.Equal(t, "", ownerOf(map[string]interface{}{"userId": 42}))
}
