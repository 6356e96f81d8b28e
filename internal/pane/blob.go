package pane

import (
	"encoding/base64"
	"fmt"
	"html"
	"path"

	"github.com/google/uuid"
)

// NewBlobID returns a fresh identifier for a blob payload.
func NewBlobID() string {
	return uuid.NewString()
}

// BlobURL returns the host-relative URL under which a stored blob is
// served back to the page.
func (w *Writer) BlobURL(id string) string {
	return path.Join("/_blob", w.env.Host(), id)
}

// CreateBlob uploads binary content to the host's blob store under the
// given id. The content travels base64-encoded; the host rejects blob
// payloads without a content length.
func (w *Writer) CreateBlob(id, contentType string, data []byte) error {
	h := NewHeaders(RespCreateBlob)
	h.ContentType = contentType
	h.Params["blob_id"] = id
	return w.Send(h, base64.StdEncoding.EncodeToString(data))
}

// BlockImage displays a previously uploaded blob as a block image
// pagelet. With overwrite set the host replaces the pane's current
// display and releases the blob shown before, which keeps a scrolling
// plot loop from accumulating stale images.
func (w *Writer) BlockImage(blobID, alt string, overwrite bool) error {
	opts := PageletOpts{Blob: blobID, Overwrite: overwrite, AddClass: "pane-blockimg"}
	return w.Pagelet(w.blockImageHTML(blobID, alt), opts)
}

func (w *Writer) blockImageHTML(blobID, alt string) string {
	return fmt.Sprintf(`<div class="pane-blockimg"><img class="pane-img" src="%s" alt="%s"></div>`,
		html.EscapeString(w.BlobURL(blobID)), html.EscapeString(alt))
}

// Image uploads image bytes as a new blob and displays them in one
// step. Each call allocates a fresh blob id; with overwrite set the
// host drops the previously displayed blob.
func (w *Writer) Image(contentType string, data []byte, alt string, overwrite bool) (string, error) {
	id := NewBlobID()
	if err := w.CreateBlob(id, contentType, data); err != nil {
		return "", err
	}
	if err := w.BlockImage(id, alt, overwrite); err != nil {
		return "", err
	}
	return id, nil
}

// FullImage uploads image bytes and displays them as a full-page
// overwrite pagelet, the display mode of the scrolling viewer.
func (w *Writer) FullImage(contentType string, data []byte, alt string) (string, error) {
	id := NewBlobID()
	if err := w.CreateBlob(id, contentType, data); err != nil {
		return "", err
	}
	opts := PageletOpts{Blob: id, Overwrite: true, Display: "fullpage", AddClass: "pane-blockimg"}
	if err := w.Pagelet(w.blockImageHTML(id, alt), opts); err != nil {
		return "", err
	}
	return id, nil
}

// Download asks the host browser to save content as a named file.
func (w *Writer) Download(filename, contentType string, data []byte) error {
	h := NewHeaders(RespDownload)
	h.ContentType = contentType
	h.Params["filename"] = filename
	return w.Send(h, base64.StdEncoding.EncodeToString(data))
}
