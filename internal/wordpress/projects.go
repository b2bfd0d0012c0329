package wordpress

import (
	"log"
	"strings"
)

const publishStatus = "publish"

// Project is a normalized portfolio project reconstructed from the export.
type Project struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Date     string          `json:"date"`
	Modified string          `json:"modified"`
	Status   string          `json:"status"`
	Link     string          `json:"link"`
	Metadata ProjectMetadata `json:"metadata"`
	Images   []string        `json:"images"`
}

// ProjectMetadata is the fixed set of custom fields carried over from the
// legacy site. Anything outside this set is dropped.
type ProjectMetadata struct {
	Info        string `json:"info,omitempty"`
	Year        string `json:"year,omitempty"`
	Category    string `json:"category,omitempty"`
	PhotoCredit string `json:"photo_credit,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ExtractProjects returns all publishable projects with their gallery image
// references resolved through the attachment index. Unresolved references are
// dropped silently; unpublished or slug-less projects are logged and skipped.
//
// Gallery images keep the order in which their metadata fields appear in the
// document. The field keys carry a numeric gallery position, but the legacy
// extractor never sorted by it; real exports emit the fields in numeric order,
// and re-sorting would change output for documents where they are not.
func ExtractProjects(items []Item, attachments AttachmentIndex) []Project {
	var projects []Project

	for _, it := range items {
		if it.PostType != PostTypeProject {
			continue
		}

		if it.Status != publishStatus {
			log.Printf("Skipping project %q with status: %s", it.Title, it.Status)
			continue
		}

		slug := strings.TrimSpace(it.PostName)
		if slug == "" {
			log.Printf("Skipping project %q with empty slug", it.Title)
			continue
		}

		var metadata ProjectMetadata
		var galleryRefs []string

		for _, m := range it.Meta {
			if isGalleryImageKey(m.Key) {
				galleryRefs = append(galleryRefs, m.Value)
				continue
			}

			switch m.Key {
			case "info":
				metadata.Info = m.Value
			case "year":
				metadata.Year = m.Value
			case "category":
				metadata.Category = m.Value
			case "photo_credit":
				metadata.PhotoCredit = m.Value
			case "status":
				metadata.Status = m.Value
			}
		}

		images := make([]string, 0, len(galleryRefs))
		for _, ref := range galleryRefs {
			attachment, ok := attachments[ref]
			if !ok {
				// Reference to an attachment the export never resolved;
				// dropped without a placeholder.
				continue
			}
			images = append(images, attachment.URL)
		}

		projects = append(projects, Project{
			ID:       it.PostID,
			Title:    it.Title,
			Slug:     slug,
			Date:     it.PostDate,
			Modified: it.PostModified,
			Status:   it.Status,
			Link:     it.Link,
			Metadata: metadata,
			Images:   images,
		})
	}

	return projects
}

// Gallery fields look like "gallery_3_image". Keys with a leading underscore
// are ACF bookkeeping entries, not content.
func isGalleryImageKey(key string) bool {
	return strings.HasPrefix(key, "gallery_") &&
		strings.HasSuffix(key, "_image") &&
		!strings.HasPrefix(key, "_")
}
