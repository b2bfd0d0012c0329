package wordpress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PressItem is a normalized press mention. Items come from two independent
// reconstruction paths (see ExtractPressItems) and may overlap; consumers must
// tolerate duplicates.
type PressItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Date          string `json:"date"`
	Link          string `json:"link"`
	Info          string `json:"info,omitempty"`
	Category      string `json:"category,omitempty"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}

const (
	pressPageSlug    = "press"
	pressPathSegment = "/press/"
)

// Repeater fields flatten an array of sub-records into keys like
// "items_4_title".
var repeaterKeyPattern = regexp.MustCompile(`^items_(\d+)_(.+)$`)

// ExtractPressItems reconstructs press items two ways: from the repeater
// field group of the press page, and from attachment items whose permalink
// lives under the press section (entries the repeater never covered). The two
// paths are not deduplicated.
func ExtractPressItems(items []Item, attachments AttachmentIndex) []PressItem {
	pressItems := extractRepeaterItems(items, attachments)
	pressItems = append(pressItems, extractPressAttachments(items)...)
	return pressItems
}

// extractRepeaterItems locates the first page with the press slug and
// materializes its repeater group. Further matching pages are ignored.
func extractRepeaterItems(items []Item, attachments AttachmentIndex) []PressItem {
	for _, it := range items {
		if it.PostType != PostTypePage || it.PostName != pressPageSlug {
			continue
		}

		// The declared count bounds how many indices are materialized.
		count := 0
		for _, m := range it.Meta {
			if m.Key == "items" {
				count, _ = strconv.Atoi(m.Value)
				break
			}
		}

		groups := make(map[int]map[string]string)
		for _, m := range it.Meta {
			match := repeaterKeyPattern.FindStringSubmatch(m.Key)
			if match == nil {
				continue
			}
			index, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if groups[index] == nil {
				groups[index] = make(map[string]string)
			}
			groups[index][match[2]] = m.Value
		}

		var pressItems []PressItem
		for i := 0; i < count; i++ {
			fields, ok := groups[i]
			if !ok {
				// Index declared but never populated; skipped, no placeholder.
				continue
			}

			title := fields["title"]
			if title == "" {
				title = "Untitled"
			}

			item := PressItem{
				ID:       fmt.Sprintf("press_%d", i),
				Title:    title,
				Slug:     fmt.Sprintf("press-item-%d", i),
				Date:     fields["year"],
				Link:     fields["url"],
				Info:     fields["info"],
				Category: fields["category"],
			}

			if file := fields["file"]; file != "" {
				if attachment, ok := attachments[file]; ok {
					item.AttachmentURL = attachment.URL
				}
			}

			pressItems = append(pressItems, item)
		}

		return pressItems
	}

	return nil
}

// extractPressAttachments emits every attachment filed under the press
// section directly, covering mentions the repeater group misses.
func extractPressAttachments(items []Item) []PressItem {
	var pressItems []PressItem

	for _, it := range items {
		if it.PostType != PostTypeAttachment {
			continue
		}
		if !strings.Contains(it.Link, pressPathSegment) {
			continue
		}

		pressItems = append(pressItems, PressItem{
			ID:            it.PostID,
			Title:         it.Title,
			Slug:          it.PostName,
			Date:          it.PostDate,
			Link:          it.Link,
			AttachmentURL: it.AttachmentURL,
		})
	}

	return pressItems
}
