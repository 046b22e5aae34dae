package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/housecheck/inspections-service/internal/middleware"
	"github.com/housecheck/inspections-service/internal/storage"
)

func authedRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUserID, uuid.NewString())
	return r.WithContext(ctx)
}

func newAttachmentTestController(t *testing.T, store http.HandlerFunc) *AttachmentController {
	t.Helper()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	client, err := storage.NewClient(srv.URL, "svc-key")
	require.NoError(t, err)
	return NewAttachmentController(client)
}

func TestDownloadAttachmentStreamsWithHeaders(t *testing.T) {
	ctrl := newAttachmentTestController(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pdf bytes"))
	})

	r := authedRequest(t, http.MethodGet,
		"/api/v1/attachments?url=https%3A%2F%2Fx.example.com%2Fstorage%2Fv1%2Fobject%2Fpublic%2Fattachments%2Freports%2Fsummary.pdf")
	w := httptest.NewRecorder()
	ctrl.DownloadAttachment(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	require.Contains(t, w.Header().Get("Content-Disposition"), "summary.pdf")
	require.Equal(t, "pdf bytes", w.Body.String())
}

func TestDownloadAttachmentAcceptsBucketAndPath(t *testing.T) {
	ctrl := newAttachmentTestController(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png bytes"))
	})

	r := authedRequest(t, http.MethodGet,
		"/api/v1/attachments?bucket=attachments&path=inspections%2Fphoto.png")
	w := httptest.NewRecorder()
	ctrl.DownloadAttachment(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, "png bytes", w.Body.String())
}

func TestDownloadAttachmentRequiresURLParam(t *testing.T) {
	ctrl := newAttachmentTestController(t, func(w http.ResponseWriter, r *http.Request) {})

	r := authedRequest(t, http.MethodGet, "/api/v1/attachments")
	w := httptest.NewRecorder()
	ctrl.DownloadAttachment(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadAttachmentRejectsForeignURLs(t *testing.T) {
	ctrl := newAttachmentTestController(t, func(w http.ResponseWriter, r *http.Request) {})

	r := authedRequest(t, http.MethodGet,
		"/api/v1/attachments?url=https%3A%2F%2Fevil.example.com%2Fsecret.png")
	w := httptest.NewRecorder()
	ctrl.DownloadAttachment(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadAttachmentMapsStoreMissTo404(t *testing.T) {
	ctrl := newAttachmentTestController(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	r := authedRequest(t, http.MethodGet,
		"/api/v1/attachments?url=https%3A%2F%2Fx.example.com%2Fstorage%2Fv1%2Fobject%2Fpublic%2Fattachments%2Fmissing.png")
	w := httptest.NewRecorder()
	ctrl.DownloadAttachment(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}
