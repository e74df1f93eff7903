package domain

import (
	"time"
)

// PDFContentType is the only content type accepted in the attachment slot.
const PDFContentType = "application/pdf"

// AttachmentSource tells how a file reached the picker.
type AttachmentSource string

const (
	SourceSelect AttachmentSource = "select"
	SourceDrop   AttachmentSource = "drop"
)

// InvalidFileMessage is the inline message shown when the source delivered
// something other than a single PDF.
func (s AttachmentSource) InvalidFileMessage() string {
	if s == SourceDrop {
		return "Please drop a valid PDF file"
	}
	return "Please upload a valid PDF file"
}

// MsgAttachmentTooLarge is the inline message for files above the size limit.
const MsgAttachmentTooLarge = "PDF file is too large"

// AttachmentState is the slot state.
type AttachmentState string

const (
	AttachmentEmpty    AttachmentState = "empty"
	AttachmentAttached AttachmentState = "attached"
)

// UploadedFile is one file as received from the client, with its declared type.
type UploadedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Upload is a single picker interaction: a file selection or a drop.
type Upload struct {
	Source AttachmentSource
	Files  []UploadedFile
}

// Attachment is the invoice PDF held in the slot. Content and name are
// stored together so a reload always finds the file behind the label.
type Attachment struct {
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Content     []byte    `json:"-"`
	AttachedAt  time.Time `json:"attachedAt"`
}
