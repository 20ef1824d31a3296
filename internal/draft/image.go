package draft

import (
	"encoding/base64"
	"net/http"
)

// Attachment is an accepted product image plus its derived preview. Data and
// Preview are always set together; there is no state with one and not the other.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
	// Preview is a data URL rendering of Data, ready for an <img> src.
	Preview string
}

// AttachmentError reports a file rejected by the PNG/JPEG gate.
type AttachmentError struct {
	Detected string
}

func (e *AttachmentError) Error() string {
	return "Invalid file format (Only PNG/JPEG)"
}

// NewAttachment sniffs the file content and builds the attachment with its
// preview. Only PNG and JPEG content is accepted; the sniff looks at the
// bytes, not the file name.
func NewAttachment(name string, data []byte) (*Attachment, error) {
	ct := http.DetectContentType(data)
	if ct != "image/png" && ct != "image/jpeg" {
		return nil, &AttachmentError{Detected: ct}
	}
	return &Attachment{
		Name:        name,
		ContentType: ct,
		Data:        data,
		Preview:     "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
