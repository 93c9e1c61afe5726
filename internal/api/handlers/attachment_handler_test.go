package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/api/handlers"
	"github.com/winnow-hq/winnow-api/internal/models"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAttachmentHandler_Upload(t *testing.T) {
	logger := zap.NewNop()

	newStore := func() *fakeJDStore {
		s := newFakeJDStore()
		s.docs["jd1"] = map[string]interface{}{"userId": "alice"}
		return s
	}

	t.Run("owner uploads and the JD records the attachment", func(t *testing.T) {
		store := newStore()
		obj := &fakeObjectClient{}
		h := handlers.NewAttachmentHandler(store, obj, logger)

		body, contentType := multipartBody(t, "file", "offer letter.pdf", []byte("pdf-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/jds/jd1/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(authed(req, "alice"), "id", "jd1")
		rr := httptest.NewRecorder()

		h.Upload(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []byte("pdf-bytes"), obj.uploadedData)
		assert.Contains(t, obj.uploadedKey, "jds/jd1/attachments/")
		assert.Contains(t, obj.uploadedKey, "offer_letter.pdf")

		atts, _ := store.docs["jd1"]["attachments"].([]models.Attachment)
		require.Len(t, atts, 1)
		assert.Equal(t, "offer letter.pdf", atts[0].Name)
		assert.Equal(t, "alice", atts[0].UploadedBy)
	})

	t.Run("non-owner gets 403 and nothing reaches the bucket", func(t *testing.T) {
		store := newStore()
		obj := &fakeObjectClient{}
		h := handlers.NewAttachmentHandler(store, obj, logger)

		body, contentType := multipartBody(t, "file", "x.pdf", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/jds/jd1/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(authed(req, "mallory"), "id", "jd1")
		rr := httptest.NewRecorder()

		h.Upload(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, obj.uploadedKey)
	})

	t.Run("missing JD is a 404", func(t *testing.T) {
		h := handlers.NewAttachmentHandler(newStore(), &fakeObjectClient{}, logger)

		body, contentType := multipartBody(t, "file", "x.pdf", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/jds/nope/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(authed(req, "alice"), "id", "nope")
		rr := httptest.NewRecorder()

		h.Upload(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("no bucket configured is a 500", func(t *testing.T) {
		h := handlers.NewAttachmentHandler(newStore(), nil, logger)

		body, contentType := multipartBody(t, "file", "x.pdf", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/jds/jd1/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(authed(req, "alice"), "id", "jd1")
		rr := httptest.NewRecorder()

		h.Upload(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("missing file field is a 400", func(t *testing.T) {
		store := newStore()
		h := handlers.NewAttachmentHandler(store, &fakeObjectClient{}, logger)

		body, contentType := multipartBody(t, "wrong", "x.pdf", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/jds/jd1/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(authed(req, "alice"), "id", "jd1")
		rr := httptest.NewRecorder()

		h.Upload(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
