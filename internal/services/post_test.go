package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/pkg/response"
)

func TestPostService_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")

	post, err := svc.Create(&CreatePostRequest{
		Title:   "Hello World",
		Slug:    "hello-world",
		Content: "First post.",
		Publish: true,
	}, author.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.Status != models.PostStatusPublished || post.PublishedAt == nil {
		t.Errorf("publish flag not applied: %+v", post)
	}

	got, err := svc.GetBySlug("hello-world")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got.Title != "Hello World" || got.AuthorID != author.ID {
		t.Errorf("unexpected post: %+v", got)
	}
	if got.ViewCount != 1 {
		t.Errorf("ViewCount = %d, expected 1 after first read", got.ViewCount)
	}

	again, _ := svc.GetBySlug("hello-world")
	if again.ViewCount != 2 {
		t.Errorf("ViewCount = %d, expected 2 after second read", again.ViewCount)
	}
}

func TestPostService_DuplicateSlugIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")

	req := &CreatePostRequest{Title: "One", Slug: "same-slug", Content: "x"}
	if _, err := svc.Create(req, author.ID); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(&CreatePostRequest{Title: "Two", Slug: "same-slug", Content: "y"}, author.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusConflict {
		t.Errorf("expected Conflict for duplicate slug, got %v", err)
	}
}

func TestPostService_ListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")

	if _, err := svc.Create(&CreatePostRequest{Title: "Draft", Slug: "draft", Content: "x"}, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(&CreatePostRequest{Title: "Live", Slug: "live", Content: "x", Publish: true}, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	published, err := svc.List(&PostListRequest{Status: models.PostStatusPublished})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if published.Total != 1 || len(published.Items) != 1 || published.Items[0].Slug != "live" {
		t.Errorf("published filter wrong: total=%d items=%v", published.Total, published.Items)
	}

	all, err := svc.List(&PostListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if all.Total != 2 {
		t.Errorf("Total = %d, expected 2", all.Total)
	}
}

func TestPostService_CategoryAttachment(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")

	cat := models.Category{Name: "Tech", Slug: "tech"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	post, err := svc.Create(&CreatePostRequest{
		Title:       "Tagged",
		Slug:        "tagged",
		Content:     "x",
		Publish:     true,
		CategoryIDs: []uint{cat.ID},
	}, author.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(post.Categories) != 1 || post.Categories[0].Slug != "tech" {
		t.Errorf("categories not attached: %+v", post.Categories)
	}

	byCategory, err := svc.List(&PostListRequest{Category: "tech"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if byCategory.Total != 1 {
		t.Errorf("Total = %d, expected 1 post in category", byCategory.Total)
	}

	// Unknown category ids are rejected.
	_, err = svc.Create(&CreatePostRequest{Title: "Bad", Slug: "bad", Content: "x", CategoryIDs: []uint{999}}, author.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusBadRequest {
		t.Errorf("expected BadRequest for unknown category, got %v", err)
	}
}

func TestPostService_UpdateAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")
	stranger := createTestUser(t, db, "b@x.com", "bob")

	if _, err := svc.Create(&CreatePostRequest{Title: "Mine", Slug: "mine", Content: "x"}, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Update("mine", &UpdatePostRequest{Title: "Stolen"}, stranger.ID, "user")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusForbidden {
		t.Errorf("expected Forbidden for non-author, got %v", err)
	}

	// The author may edit; so may an admin.
	if _, err := svc.Update("mine", &UpdatePostRequest{Title: "Renamed"}, author.ID, "user"); err != nil {
		t.Errorf("author Update() error = %v", err)
	}
	if _, err := svc.Update("mine", &UpdatePostRequest{Title: "Moderated"}, stranger.ID, "admin"); err != nil {
		t.Errorf("admin Update() error = %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "a@x.com", "alice")

	if _, err := svc.Create(&CreatePostRequest{Title: "Gone", Slug: "gone", Content: "x"}, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete("gone", author.ID, "user"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := svc.GetBySlug("gone")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusNotFound {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
}
