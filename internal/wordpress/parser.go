package wordpress

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Post types that matter to the pipeline
const (
	PostTypeAttachment = "attachment"
	PostTypeProject    = "project"
	PostTypePage       = "page"
)

// Item is one generic record of the export document: a post, a page or an
// attachment. Field order within Meta follows document order.
type Item struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	PostID        string `xml:"post_id"`
	PostDate      string `xml:"post_date"`
	PostModified  string `xml:"post_modified"`
	PostName      string `xml:"post_name"`
	PostType      string `xml:"post_type"`
	Status        string `xml:"status"`
	AttachmentURL string `xml:"attachment_url"`
	Meta          []Meta `xml:"postmeta"`
}

// Meta is a single flat key/value metadata entry of an item.
type Meta struct {
	Key   string `xml:"meta_key"`
	Value string `xml:"meta_value"`
}

type document struct {
	Items []Item `xml:"channel>item"`
}

// Some exports carry the CDATA wrapper as literal text instead of a real
// CDATA section. Accept both and always return the inner text.
var cdataMarker = regexp.MustCompile(`(?s)!\[CDATA\[(.*?)\]\]`)

func stripCDATA(s string) string {
	if m := cdataMarker.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func normalizeText(s string) string {
	return stripCDATA(strings.TrimSpace(s))
}

func normalizeItem(it *Item) {
	it.Title = normalizeText(it.Title)
	it.Link = normalizeText(it.Link)
	it.PostID = normalizeText(it.PostID)
	it.PostDate = normalizeText(it.PostDate)
	it.PostModified = normalizeText(it.PostModified)
	it.PostName = normalizeText(it.PostName)
	it.PostType = normalizeText(it.PostType)
	it.Status = normalizeText(it.Status)
	it.AttachmentURL = normalizeText(it.AttachmentURL)
	for i := range it.Meta {
		it.Meta[i].Key = normalizeText(it.Meta[i].Key)
		it.Meta[i].Value = normalizeText(it.Meta[i].Value)
	}
}

// Parse reads a whole WordPress export document and returns its items in
// document order. The export is small enough to hold in memory, so no
// streaming is attempted. A malformed document is a fatal error.
func Parse(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export document: %w", err)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed export document: %w", err)
	}

	items := doc.Items
	for i := range items {
		normalizeItem(&items[i])
	}

	return items, nil
}

// ParseFile opens and parses the export document at path.
func ParseFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export document: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
