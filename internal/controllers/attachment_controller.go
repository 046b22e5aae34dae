package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/housecheck/inspections-service/internal/storage"
	"github.com/housecheck/inspections-service/internal/utils"
)

// AttachmentController proxies attachment downloads from the object
// store so the browser never needs the store's service key.
type AttachmentController struct {
	store *storage.Client
}

func NewAttachmentController(store *storage.Client) *AttachmentController {
	return &AttachmentController{store: store}
}

// DownloadAttachment streams an object back to the client, addressed
// either as ?bucket=&path= or as a public ?url= in the store's fixed
// shape. The Content-Type comes from the file extension, falling back
// to application/octet-stream.
func (c *AttachmentController) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	bucket := r.URL.Query().Get("bucket")
	objectPath := r.URL.Query().Get("path")
	if bucket == "" || objectPath == "" {
		rawURL := r.URL.Query().Get("url")
		if rawURL == "" {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "bucket and path (or url) query params are required", nil)
			return
		}
		var err error
		bucket, objectPath, err = utils.ParseStorageURL(rawURL)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unrecognized attachment URL", nil, err)
			return
		}
	}

	body, size, err := c.store.Download(r.Context(), bucket, objectPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeAttachmentNotFound, "Attachment not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Attachment store unavailable", nil, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", utils.ContentTypeForPath(objectPath))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(objectPath)))
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		utils.Logger.WithError(err).Warn("Attachment stream interrupted")
	}
}
