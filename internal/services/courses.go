package services

import (
	"context"
	"net/url"
	"strings"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

type CourseService struct {
	store *store.Store
}

func NewCourseService(s *store.Store) *CourseService {
	return &CourseService{store: s}
}

type CourseFilter struct {
	Category      string
	Difficulty    string
	PublishedOnly bool
	Search        string
}

func (s *CourseService) List(ctx context.Context, filter CourseFilter, sortSpec string, limit int) ([]models.Course, error) {
	query := store.Query{}
	if filter.Category != "" {
		query["category"] = store.Eq(filter.Category)
	}
	if filter.Difficulty != "" {
		query["difficulty"] = store.Eq(filter.Difficulty)
	}
	if filter.PublishedOnly {
		query["published"] = store.Eq(true)
	}
	if term := CleanSearchTerm(filter.Search); term != "" {
		needle := strings.ToLower(term)
		query["title"] = store.Where(func(value any, _ store.Record) bool {
			title, _ := value.(string)
			return strings.Contains(strings.ToLower(title), needle)
		})
	}
	recs, err := s.store.Filter(ctx, query, sortSpec, limit)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Course](recs)
}

func (s *CourseService) ByID(ctx context.Context, id int64) (models.Course, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Course{}, ErrNotFound("Course not found")
	}
	var course models.Course
	if err := store.Decode(rec, &course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, course models.Course) (models.Course, error) {
	title, err := NormalizeRequired(course.Title, "Course title is required")
	if err != nil {
		return models.Course{}, ErrBadRequest(err.Error())
	}
	course.Title = title
	if course.YoutubeID != nil {
		id, ok := ExtractYoutubeID(*course.YoutubeID)
		if !ok {
			return models.Course{}, ErrBadRequest("Unrecognized YouTube link")
		}
		course.YoutubeID = &id
	}
	course.EnrolledCount = 0
	course.CompletedCount = 0
	rec, err := store.Encode(course)
	if err != nil {
		return models.Course{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.Course{}, err
	}
	var out models.Course
	if err := store.Decode(created, &out); err != nil {
		return models.Course{}, err
	}
	return out, nil
}

func (s *CourseService) Update(ctx context.Context, id int64, patch store.Record) (models.Course, error) {
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Course{}, err
	}
	var out models.Course
	if err := store.Decode(rec, &out); err != nil {
		return models.Course{}, err
	}
	return out, nil
}

func (s *CourseService) Remove(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

func (s *CourseService) SetPublished(ctx context.Context, id int64, published bool) (models.Course, error) {
	return s.Update(ctx, id, store.Record{"published": published})
}

func (s *CourseService) incrementCounter(ctx context.Context, id int64, field string) error {
	course, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	value := course.EnrolledCount
	if field == "completed_count" {
		value = course.CompletedCount
	}
	_, err = s.store.Update(ctx, id, store.Record{field: value + 1})
	return err
}

// ExtractYoutubeID accepts a bare video id, a watch URL, or a youtu.be
// short link.
func ExtractYoutubeID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "/") && !strings.Contains(raw, ".") {
		return raw, true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := parsed.Query().Get("v"); id != "" {
			return id, true
		}
		if strings.HasPrefix(parsed.Path, "/embed/") {
			id := strings.TrimPrefix(parsed.Path, "/embed/")
			if id != "" {
				return id, true
			}
		}
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if id != "" {
			return id, true
		}
	}
	return "", false
}
