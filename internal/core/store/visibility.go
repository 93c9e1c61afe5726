package store

import "strings"

// visibleDoc is one query hit during the visibility merge: a JD document's
// id plus its raw field map.
type visibleDoc struct {
	ID   string
	Data map[string]interface{}
}

// mergeVisible combines the three visibility query results into one list,
// de-duplicated by document id. Priority order is fixed: owned docs first,
// then collaborator-id matches, then collaborator-email matches; the first
// match decides the injected _role tag and later cases never re-add or
// re-tag a document. The returned set holds the ids of documents that were
// only reachable through the email fallback and therefore need the
// collaborator-id backfill.
func mergeVisible(owned, byID, byEmail []visibleDoc) ([]map[string]interface{}, map[string]bool) {
	result := make([]map[string]interface{}, 0, len(owned)+len(byID)+len(byEmail))
	seen := make(map[string]bool)

	add := func(doc visibleDoc, role string) {
		data := doc.Data
		data["id"] = doc.ID
		data["_role"] = role
		result = append(result, data)
		seen[doc.ID] = true
	}

	for _, doc := range owned {
		add(doc, "owner")
	}
	for _, doc := range byID {
		if !seen[doc.ID] {
			add(doc, "collaborator")
		}
	}

	needsBackfill := make(map[string]bool)
	for _, doc := range byEmail {
		if !seen[doc.ID] {
			add(doc, "collaborator")
			needsBackfill[doc.ID] = true
		}
	}

	return result, needsBackfill
}

// stampCollaborators sets the uid on every collaborators entry whose email
// matches case-insensitively and which has no uid yet. Entries are mutated
// in place; the return value says whether anything changed. Stored emails
// are not assumed to be normalized, so both sides are lowered.
func stampCollaborators(collabs []interface{}, email, uid string) bool {
	email = strings.ToLower(email)
	updated := false
	for _, c := range collabs {
		entry, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		entryEmail, _ := entry["email"].(string)
		entryUID, _ := entry["uid"].(string)
		if strings.ToLower(entryEmail) == email && entryUID == "" {
			entry["uid"] = uid
			updated = true
		}
	}
	return updated
}

// ownerOf reads the owning uid off a JD document.
func ownerOf(data map[string]interface{}) string {
	uid, _ := data["userId"].(string)
	return uid
}
