package wordpress

import (
	"testing"
)

func publishedProject(id, slug string, meta ...Meta) Item {
	return Item{
		PostType: "project",
		PostID:   id,
		Title:    "Project " + id,
		PostName: slug,
		Status:   "publish",
		Meta:     meta,
	}
}

func TestExtractProjects_FiltersUnpublished(t *testing.T) {
	items := []Item{
		publishedProject("1", "kept"),
		{PostType: "project", PostID: "2", Title: "Draft", PostName: "draft", Status: "draft"},
		{PostType: "project", PostID: "3", Title: "Private", PostName: "private", Status: "private"},
		{PostType: "project", PostID: "4", Title: "Pending", PostName: "pending", Status: "pending"},
	}

	projects := ExtractProjects(items, AttachmentIndex{})

	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Slug != "kept" {
		t.Errorf("expected slug 'kept', got %q", projects[0].Slug)
	}
}

func TestExtractProjects_FiltersEmptySlug(t *testing.T) {
	items := []Item{
		{PostType: "project", PostID: "1", Title: "No slug", PostName: "", Status: "publish"},
		{PostType: "project", PostID: "2", Title: "Blank slug", PostName: "   ", Status: "publish"},
	}

	projects := ExtractProjects(items, AttachmentIndex{})

	if len(projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(projects))
	}
}

func TestExtractProjects_MetadataAllowList(t *testing.T) {
	items := []Item{
		publishedProject("1", "villa",
			Meta{Key: "info", Value: "A seaside villa"},
			Meta{Key: "year", Value: "2020"},
			Meta{Key: "category", Value: "Residential"},
			Meta{Key: "photo_credit", Value: "J. Doe"},
			Meta{Key: "status", Value: "Completed"},
			Meta{Key: "unrelated_field", Value: "dropped"},
			Meta{Key: "_edit_lock", Value: "dropped"},
		),
	}

	projects := ExtractProjects(items, AttachmentIndex{})

	meta := projects[0].Metadata
	if meta.Info != "A seaside villa" {
		t.Errorf("unexpected info: %q", meta.Info)
	}
	if meta.Year != "2020" {
		t.Errorf("unexpected year: %q", meta.Year)
	}
	if meta.Category != "Residential" {
		t.Errorf("unexpected category: %q", meta.Category)
	}
	if meta.PhotoCredit != "J. Doe" {
		t.Errorf("unexpected photo credit: %q", meta.PhotoCredit)
	}
	if meta.Status != "Completed" {
		t.Errorf("unexpected status: %q", meta.Status)
	}
}

func TestExtractProjects_GalleryResolution(t *testing.T) {
	index := AttachmentIndex{
		"100": {ID: "100", URL: "https://cdn.example.com/a.jpg"},
		"102": {ID: "102", URL: "https://cdn.example.com/c.jpg"},
	}

	// The middle reference has no matching attachment and must be dropped
	// without a placeholder, keeping the encounter order of the rest.
	items := []Item{
		publishedProject("1", "villa",
			Meta{Key: "gallery_0_image", Value: "100"},
			Meta{Key: "gallery_1_image", Value: "101"},
			Meta{Key: "gallery_2_image", Value: "102"},
		),
	}

	projects := ExtractProjects(items, index)

	images := projects[0].Images
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0] != "https://cdn.example.com/a.jpg" || images[1] != "https://cdn.example.com/c.jpg" {
		t.Errorf("unexpected image order: %v", images)
	}
}

func TestExtractProjects_GalleryEncounterOrder(t *testing.T) {
	index := AttachmentIndex{
		"1": {ID: "1", URL: "https://cdn.example.com/one.jpg"},
		"2": {ID: "2", URL: "https://cdn.example.com/two.jpg"},
	}

	// Fields deliberately out of numeric order: document encounter order wins.
	items := []Item{
		publishedProject("1", "villa",
			Meta{Key: "gallery_5_image", Value: "2"},
			Meta{Key: "gallery_0_image", Value: "1"},
		),
	}

	projects := ExtractProjects(items, index)

	images := projects[0].Images
	if images[0] != "https://cdn.example.com/two.jpg" || images[1] != "https://cdn.example.com/one.jpg" {
		t.Errorf("expected document encounter order preserved, got %v", images)
	}
}

func TestExtractProjects_IgnoresBookkeepingGalleryKeys(t *testing.T) {
	index := AttachmentIndex{
		"1": {ID: "1", URL: "https://cdn.example.com/one.jpg"},
	}

	items := []Item{
		publishedProject("1", "villa",
			Meta{Key: "_gallery_0_image", Value: "1"},
		),
	}

	projects := ExtractProjects(items, index)

	if len(projects[0].Images) != 0 {
		t.Errorf("expected underscore-prefixed keys ignored, got %v", projects[0].Images)
	}
}
