package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

const jdsCollection = "jds"

// FirestoreJDStore keeps "jds" documents. The owner uid is written once at
// creation and never changed afterwards.
type FirestoreJDStore struct {
	fs  *firestore.Client
	log *zap.Logger
}

func NewFirestoreJDStore(fs *firestore.Client, log *zap.Logger) *FirestoreJDStore {
	return &FirestoreJDStore{fs: fs, log: log}
}

func (s *FirestoreJDStore) Create(ctx context.Context, ownerUID string, jd *models.JobDescription) (string, error) {
	ref := s.fs.Collection(jdsCollection).NewDoc()
	_, err := ref.Set(ctx, map[string]interface{}{
		"userId":             ownerUID,
		"title":              jd.Title,
		"companyName":        jd.CompanyName,
		"teamName":           jd.TeamName,
		"jobRole":            jd.JobRole,
		"location":           jd.Location,
		"scale":              jd.Scale,
		"vision":             jd.Vision,
		"mission":            jd.Mission,
		"responsibilities":   strList(jd.Responsibilities),
		"requirements":       strList(jd.Requirements),
		"preferred":          strList(jd.Preferred),
		"benefits":           strList(jd.Benefits),
		"collaboratorIds":    strList(jd.CollaboratorIDs),
		"collaboratorEmails": strList(jd.CollaboratorEmails),
		"collaborators":      collabList(jd.Collaborators),
		"createdAt":          firestore.ServerTimestamp,
		"updatedAt":          firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("create jd: %w", err)
	}
	return ref.ID, nil
}

// Get fetches a JD by id with no ownership check: JDs are shareable by id.
func (s *FirestoreJDStore) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	snap, err := s.fs.Collection(jdsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apperror.NotFound("JD")
	}
	if err != nil {
		return nil, fmt.Errorf("get jd: %w", err)
	}
	data := snap.Data()
	data["id"] = snap.Ref.ID
	return data, nil
}

// ListVisible returns every JD the caller may see: owned, invited by uid,
// or invited by email (case c). Case-c hits trigger the best-effort backfill
// that moves the email invite onto the caller's uid; a failed backfill never
// affects the returned list.
func (s *FirestoreJDStore) ListVisible(ctx context.Context, uid, email string) ([]map[string]interface{}, error) {
	col := s.fs.Collection(jdsCollection)

	owned, _, err := s.queryDocs(ctx, col.Where("userId", "==", uid))
	if err != nil {
		return nil, fmt.Errorf("list owned jds: %w", err)
	}

	byID, _, err := s.queryDocs(ctx, col.Where("collaboratorIds", "array-contains", uid))
	if err != nil {
		return nil, fmt.Errorf("list collaborator jds: %w", err)
	}

	var byEmail []visibleDoc
	refs := map[string]*firestore.DocumentRef{}
	if email != "" {
		byEmail, refs, err = s.queryDocs(ctx, col.Where("collaboratorEmails", "array-contains", strings.ToLower(email)))
		if err != nil {
			return nil, fmt.Errorf("list invited jds: %w", err)
		}
	}

	result, needsBackfill := mergeVisible(owned, byID, byEmail)

	for _, doc := range byEmail {
		if needsBackfill[doc.ID] {
			s.backfillCollaborator(ctx, refs[doc.ID], doc.Data, uid, email)
		}
	}

	return result, nil
}

func (s *FirestoreJDStore) Update(ctx context.Context, id, callerUID string, patch *models.JDPatch) error {
	ref := s.fs.Collection(jdsCollection).Doc(id)
	if err := s.authorizeOwner(ctx, ref, callerUID); err != nil {
		return err
	}

	updates := []firestore.Update{{Path: "updatedAt", Value: firestore.ServerTimestamp}}
	for path, value := range patch.Changes() {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := ref.Update(ctx, updates); err != nil {
		return fmt.Errorf("update jd: %w", err)
	}
	return nil
}

func (s *FirestoreJDStore) Delete(ctx context.Context, id, callerUID string) error {
	ref := s.fs.Collection(jdsCollection).Doc(id)
	if err := s.authorizeOwner(ctx, ref, callerUID); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete jd: %w", err)
	}
	return nil
}

func (s *FirestoreJDStore) AddAttachment(ctx context.Context, id, callerUID string, att models.Attachment) error {
	ref := s.fs.Collection(jdsCollection).Doc(id)
	if err := s.authorizeOwner(ctx, ref, callerUID); err != nil {
		return err
	}
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "attachments", Value: firestore.ArrayUnion(att)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("add attachment: %w", err)
	}
	return nil
}

// authorizeOwner loads the target and applies the not-found-before-forbidden
// ordering: a missing document is 404 even for a caller who would not own it.
func (s *FirestoreJDStore) authorizeOwner(ctx context.Context, ref *firestore.DocumentRef, callerUID string) error {
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return apperror.NotFound("JD")
	}
	if err != nil {
		return fmt.Errorf("get jd: %w", err)
	}
	if ownerOf(snap.Data()) != callerUID {
		return apperror.Forbidden("Not authorized")
	}
	return nil
}

// backfillCollaborator appends the caller's uid to collaboratorIds and
// stamps the matching collaborators entry. Strictly best-effort: every
// failure is logged and swallowed so the read that triggered it is never
// affected, and ArrayUnion keeps concurrent duplicate adds harmless.
func (s *FirestoreJDStore) backfillCollaborator(ctx context.Context, ref *firestore.DocumentRef, data map[string]interface{}, uid, email string) {
	if ref == nil {
		return
	}
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "collaboratorIds", Value: firestore.ArrayUnion(uid)},
	})
	if err != nil {
		s.log.Warn("collaborator backfill failed", zap.String("jd", ref.ID), zap.Error(err))
		return
	}

	collabs, _ := data["collaborators"].([]interface{})
	if stampCollaborators(collabs, email, uid) {
		_, err := ref.Update(ctx, []firestore.Update{
			{Path: "collaborators", Value: collabs},
		})
		if err != nil {
			s.log.Warn("collaborator stamp failed", zap.String("jd", ref.ID), zap.Error(err))
		}
	}
}

func (s *FirestoreJDStore) queryDocs(ctx context.Context, q firestore.Query) ([]visibleDoc, map[string]*firestore.DocumentRef, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var docs []visibleDoc
	refs := map[string]*firestore.DocumentRef{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, visibleDoc{ID: snap.Ref.ID, Data: snap.Data()})
		refs[snap.Ref.ID] = snap.Ref
	}
	return docs, refs, nil
}

func strList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func collabList(v []models.Collaborator) []models.Collaborator {
	if v == nil {
		return []models.Collaborator{}
	}
	return v
}

var _ core.JDStore = (*FirestoreJDStore)(nil)
