package wordpress

import (
	"path"
	"strings"
)

// Attachment is a binary-asset record with a resolvable URL, keyed by its
// legacy post id.
type Attachment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// AttachmentIndex maps legacy attachment ids to resolved attachments. It is
// read-only once built.
type AttachmentIndex map[string]Attachment

// BuildAttachmentIndex makes a single forward pass over all items and indexes
// every attachment with a non-empty URL. Posts reference attachments in either
// direction of document order, so the index must be complete before any entity
// extraction runs.
func BuildAttachmentIndex(items []Item) AttachmentIndex {
	index := make(AttachmentIndex)

	for _, it := range items {
		if it.PostType != PostTypeAttachment {
			continue
		}
		if it.AttachmentURL == "" {
			continue
		}

		index[it.PostID] = Attachment{
			ID:       it.PostID,
			Title:    it.Title,
			URL:      it.AttachmentURL,
			Filename: urlFilename(it.AttachmentURL),
		}
	}

	return index
}

// urlFilename returns the last path segment of a URL, ignoring any query
// string or fragment.
func urlFilename(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return path.Base(rawURL)
}
