package models

import (
	"strings"
	"time"
)

// Content type tags derived from the uploaded asset's MIME type.
const (
	ContentTypeImage = "image"
	ContentTypePDF   = "pdf"
	ContentTypeVideo = "video"
	ContentTypeWord  = "word"
	ContentTypePPT   = "ppt"
	ContentTypeOther = "other"
)

// Content describes one uploaded learning asset. The binary itself lives
// on the external media host; this row only carries its metadata.
type Content struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ContentType   string    `db:"content_type" json:"content_type"`
	FileURL       string    `db:"file_url" json:"file_url"`
	PublicID      string    `db:"public_id" json:"public_id"`
	FileSize      *int64    `db:"file_size" json:"file_size,omitempty"`
	FileName      *string   `db:"file_name" json:"file_name,omitempty"`
	UploadedBy    string    `db:"uploaded_by" json:"uploaded_by"`
	UploaderEmail string    `db:"uploader_email" json:"uploader_email"`
	ExternalID    *string   `db:"external_id" json:"external_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ContentTypeFromMIME maps a MIME type onto the coarse content-type tag.
func ContentTypeFromMIME(mime string) string {
	mime = strings.ToLower(mime)
	switch {
	case strings.HasPrefix(mime, "image/"):
		return ContentTypeImage
	case mime == "application/pdf":
		return ContentTypePDF
	case strings.HasPrefix(mime, "video/"):
		return ContentTypeVideo
	case mime == "application/msword",
		mime == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ContentTypeWord
	case mime == "application/vnd.ms-powerpoint",
		mime == "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return ContentTypePPT
	default:
		return ContentTypeOther
	}
}
