package handlers_test

import (
	"context"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	"github.com/winnow-hq/winnow-api/internal/models"
)

// fakeAuthClient stands in for Firebase Auth.
type fakeAuthClient struct {
	createUID string
	createErr error
	created   []string // emails passed to CreateAccount

	claims    models.Claims
	verifyErr error
}

func (f *fakeAuthClient) CreateAccount(_ context.Context, email, _, _ string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, email)
	return f.createUID, nil
}

func (f *fakeAuthClient) VerifyIDToken(_ context.Context, _ string) (models.Claims, error) {
	if f.verifyErr != nil {
		return models.Claims{}, f.verifyErr
	}
	return f.claims, nil
}

// fakeUserStore records user-document writes.
type fakeUserStore struct {
	createErr error
	createdBy map[string]string // uid -> nickname

	getData map[string]interface{}
	getErr  error

	syncErr    error
	syncedWith []models.Claims
}

func (f *fakeUserStore) Create(_ context.Context, uid, _, nickname string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.createdBy == nil {
		f.createdBy = map[string]string{}
	}
	f.createdBy[uid] = nickname
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, _ string) (map[string]interface{}, error) {
	return f.getData, f.getErr
}

func (f *fakeUserStore) SyncExternalLogin(_ context.Context, claims models.Claims) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.syncedWith = append(f.syncedWith, claims)
	return nil
}

// fakeJDStore keeps JD documents in a map and applies the same
// not-found / forbidden ordering as the Firestore-backed store.
type fakeJDStore struct {
	docs map[string]map[string]interface{}

	createID  string
	createErr error
	listOut   []map[string]interface{}
	listErr   error
}

func newFakeJDStore() *fakeJDStore {
	return &fakeJDStore{docs: map[string]map[string]interface{}{}, createID: "new-jd"}
}

func (f *fakeJDStore) Create(_ context.Context, ownerUID string, jd *models.JobDescription) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.docs[f.createID] = map[string]interface{}{"userId": ownerUID, "title": jd.Title}
	return f.createID, nil
}

func (f *fakeJDStore) Get(_ context.Context, id string) (map[string]interface{}, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, apperror.NotFound("JD")
	}
	out := map[string]interface{}{"id": id}
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (f *fakeJDStore) ListVisible(_ context.Context, _, _ string) ([]map[string]interface{}, error) {
	return f.listOut, f.listErr
}

func (f *fakeJDStore) authorize(id, callerUID string) (map[string]interface{}, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, apperror.NotFound("JD")
	}
	if owner, _ := doc["userId"].(string); owner != callerUID {
		return nil, apperror.Forbidden("Not authorized")
	}
	return doc, nil
}

func (f *fakeJDStore) Update(_ context.Context, id, callerUID string, patch *models.JDPatch) error {
	doc, err := f.authorize(id, callerUID)
	if err != nil {
		return err
	}
	for k, v := range patch.Changes() {
		doc[k] = v
	}
	return nil
}

func (f *fakeJDStore) Delete(_ context.Context, id, callerUID string) error {
	if _, err := f.authorize(id, callerUID); err != nil {
		return err
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeJDStore) AddAttachment(_ context.Context, id, callerUID string, att models.Attachment) error {
	doc, err := f.authorize(id, callerUID)
	if err != nil {
		return err
	}
	atts, _ := doc["attachments"].([]models.Attachment)
	doc["attachments"] = append(atts, att)
	return nil
}

// fakeChatModel echoes back what it was asked.
type fakeChatModel struct {
	gotHistory []models.ChatTurn
	gotMessage string
	reply      models.ChatReply
	err        error
}

func (f *fakeChatModel) Chat(_ context.Context, history []models.ChatTurn, message string) (models.ChatReply, error) {
	f.gotHistory = history
	f.gotMessage = message
	if f.err != nil {
		return models.ChatReply{}, f.err
	}
	return f.reply, nil
}

// fakeObjectClient records uploads.
type fakeObjectClient struct {
	uploadedKey  string
	uploadedData []byte
	contentType  string
	uploadErr    error
}

func (f *fakeObjectClient) UploadFile(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedKey = key
	f.uploadedData = data
	f.contentType = contentType
	return "https://storage.googleapis.com/test-bucket/" + key, nil
}

func (f *fakeObjectClient) DeleteFile(_ context.Context, _ string) error {
	return nil
}
