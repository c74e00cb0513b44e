package services

import (
	"context"
	"testing"

	"ascenda-backend-go/internal/models"
)

func TestExtractYoutubeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"https://www.youtube.com/watch", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractYoutubeID(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ExtractYoutubeID(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCourseListFilters(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	published, err := r.Courses.List(ctx, CourseFilter{PublishedOnly: true}, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published seed courses, got %d", len(published))
	}

	search, err := r.Courses.List(ctx, CourseFilter{Search: "rest"}, "", 0)
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if len(search) != 1 || search[0].Title != "REST API Design" {
		t.Fatalf("unexpected search result: %v", search)
	}

	category, err := r.Courses.List(ctx, CourseFilter{Category: "tooling"}, "", 0)
	if err != nil {
		t.Fatalf("List category: %v", err)
	}
	if len(category) != 1 || category[0].Title != "Git Fundamentals" {
		t.Fatalf("unexpected category result: %v", category)
	}
}

func TestCreateCourseNormalizesYoutubeLink(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	link := "https://youtu.be/abc123xyz"
	course, err := r.Courses.Create(ctx, models.Course{Title: "New course", YoutubeID: &link})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.YoutubeID == nil || *course.YoutubeID != "abc123xyz" {
		t.Fatalf("youtube id not normalized: %v", course.YoutubeID)
	}
	if course.EnrolledCount != 0 || course.CompletedCount != 0 {
		t.Fatalf("counters not zeroed: %+v", course)
	}

	bad := "https://vimeo.com/1"
	if _, err := r.Courses.Create(ctx, models.Course{Title: "Bad", YoutubeID: &bad}); err == nil {
		t.Fatal("non-YouTube link accepted")
	}
	if _, err := r.Courses.Create(ctx, models.Course{Title: "  "}); err == nil {
		t.Fatal("blank title accepted")
	}
}
