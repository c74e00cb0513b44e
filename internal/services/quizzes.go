package services

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

var quizDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

type QuizService struct {
	templates     *store.Store
	generated     *store.Store
	assignments   *store.Store
	interns       *InternService
	notifications *NotificationService

	// generateDelay simulates the latency of the question generator so the
	// UI's progress states stay exercisable. Tests shrink it.
	generateDelay time.Duration
	randFn        func(n int) int
}

func NewQuizService(templates, generated, assignments *store.Store, interns *InternService, notifications *NotificationService) *QuizService {
	return &QuizService{
		templates:     templates,
		generated:     generated,
		assignments:   assignments,
		interns:       interns,
		notifications: notifications,
		generateDelay: 2 * time.Second,
		randFn:        rand.Intn,
	}
}

func (s *QuizService) ListTemplates(ctx context.Context, includeArchived bool) ([]models.QuizTemplate, error) {
	query := store.Query{}
	if !includeArchived {
		query["archived"] = store.Eq(false)
	}
	recs, err := s.templates.Filter(ctx, query, "-updated_at", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.QuizTemplate](recs)
}

func (s *QuizService) TemplateByID(ctx context.Context, id int64) (models.QuizTemplate, error) {
	rec, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return models.QuizTemplate{}, ErrNotFound("Quiz template not found")
	}
	var template models.QuizTemplate
	if err := store.Decode(rec, &template); err != nil {
		return models.QuizTemplate{}, err
	}
	return template, nil
}

func (s *QuizService) CreateTemplate(ctx context.Context, template models.QuizTemplate) (models.QuizTemplate, error) {
	title, err := NormalizeRequired(template.Title, "Template title is required")
	if err != nil {
		return models.QuizTemplate{}, ErrBadRequest(err.Error())
	}
	template.Title = title
	for difficulty := range template.Questions {
		if !quizDifficulties[difficulty] {
			return models.QuizTemplate{}, ErrBadRequest("Unknown difficulty: " + difficulty)
		}
	}
	template.Tags = CleanTags(template.Tags)
	template.Version = 1
	template.Archived = false
	rec, err := store.Encode(template)
	if err != nil {
		return models.QuizTemplate{}, err
	}
	created, err := s.templates.Create(ctx, rec)
	if err != nil {
		return models.QuizTemplate{}, err
	}
	var out models.QuizTemplate
	if err := store.Decode(created, &out); err != nil {
		return models.QuizTemplate{}, err
	}
	return out, nil
}

// UpdateTemplate applies a patch and bumps the version whenever the content
// fields change. Archived templates are read-only.
func (s *QuizService) UpdateTemplate(ctx context.Context, id int64, patch store.Record) (models.QuizTemplate, error) {
	current, err := s.TemplateByID(ctx, id)
	if err != nil {
		return models.QuizTemplate{}, err
	}
	if current.Archived {
		return models.QuizTemplate{}, ErrBadRequest("Template is archived")
	}
	if raw, ok := patch["tags"]; ok && raw != nil {
		patch["tags"] = CleanTags(StringValues(raw))
	}
	for _, field := range []string{"title", "topic", "questions", "tags"} {
		if _, ok := patch[field]; ok {
			patch["version"] = current.Version + 1
			break
		}
	}
	rec, err := s.templates.Update(ctx, id, patch)
	if err != nil {
		return models.QuizTemplate{}, err
	}
	var out models.QuizTemplate
	if err := store.Decode(rec, &out); err != nil {
		return models.QuizTemplate{}, err
	}
	return out, nil
}

func (s *QuizService) ArchiveTemplate(ctx context.Context, id int64) (models.QuizTemplate, error) {
	if _, err := s.TemplateByID(ctx, id); err != nil {
		return models.QuizTemplate{}, err
	}
	rec, err := s.templates.Update(ctx, id, store.Record{"archived": true})
	if err != nil {
		return models.QuizTemplate{}, err
	}
	var out models.QuizTemplate
	if err := store.Decode(rec, &out); err != nil {
		return models.QuizTemplate{}, err
	}
	return out, nil
}

type GenerateParams struct {
	Topic     string
	SourceURL *string
	Counts    map[string]int
}

// Generate synthesizes placeholder questions for the requested topic. The
// real question generator is an external model; this keeps its contract
// (validation, latency, cancellation) so callers do not have to care.
func (s *QuizService) Generate(ctx context.Context, params GenerateParams) (models.GeneratedQuiz, error) {
	topic, err := NormalizeRequired(params.Topic, "Quiz topic is required")
	if err != nil {
		return models.GeneratedQuiz{}, ErrBadRequest(err.Error())
	}
	total := 0
	for difficulty, count := range params.Counts {
		if !quizDifficulties[difficulty] {
			return models.GeneratedQuiz{}, ErrBadRequest("Unknown difficulty: " + difficulty)
		}
		if count < 0 {
			return models.GeneratedQuiz{}, ErrBadRequest("Question counts cannot be negative")
		}
		total += count
	}
	if total == 0 {
		return models.GeneratedQuiz{}, ErrBadRequest("Request at least one question")
	}
	if params.SourceURL != nil {
		raw := strings.TrimSpace(*params.SourceURL)
		if raw != "" {
			if strings.Contains(raw, "youtu") {
				if _, ok := ExtractYoutubeID(raw); !ok {
					return models.GeneratedQuiz{}, ErrBadRequest("Unrecognized YouTube link")
				}
			}
			params.SourceURL = &raw
		} else {
			params.SourceURL = nil
		}
	}
	select {
	case <-time.After(s.generateDelay):
	case <-ctx.Done():
		return models.GeneratedQuiz{}, ctx.Err()
	}
	questions := map[string][]models.QuizQuestion{}
	for difficulty, count := range params.Counts {
		if count == 0 {
			continue
		}
		batch := make([]models.QuizQuestion, 0, count)
		for i := 1; i <= count; i++ {
			batch = append(batch, models.QuizQuestion{
				Prompt: fmt.Sprintf("Question %d about %s (%s)", i, topic, difficulty),
				Options: []string{
					"Option A", "Option B", "Option C", "Option D",
				},
				CorrectIndex: s.randFn(4),
			})
		}
		questions[difficulty] = batch
	}
	quiz := models.GeneratedQuiz{
		Topic:     topic,
		SourceURL: params.SourceURL,
		Questions: questions,
	}
	rec, err := store.Encode(quiz)
	if err != nil {
		return models.GeneratedQuiz{}, err
	}
	created, err := s.generated.Create(ctx, rec)
	if err != nil {
		return models.GeneratedQuiz{}, err
	}
	if err := store.Decode(created, &quiz); err != nil {
		return models.GeneratedQuiz{}, err
	}
	return quiz, nil
}

func (s *QuizService) GeneratedByID(ctx context.Context, id int64) (models.GeneratedQuiz, error) {
	rec, err := s.generated.FindByID(ctx, id)
	if err != nil {
		return models.GeneratedQuiz{}, ErrNotFound("Generated quiz not found")
	}
	var quiz models.GeneratedQuiz
	if err := store.Decode(rec, &quiz); err != nil {
		return models.GeneratedQuiz{}, err
	}
	return quiz, nil
}

// AssignTemplate distributes a template to interns and notifies each one.
func (s *QuizService) AssignTemplate(ctx context.Context, templateID int64, assigneeIDs []int64, dueDate *string, visibility, actorName string) (models.QuizAssignment, error) {
	if len(assigneeIDs) == 0 {
		return models.QuizAssignment{}, ErrBadRequest("Select at least one intern")
	}
	template, err := s.TemplateByID(ctx, templateID)
	if err != nil {
		return models.QuizAssignment{}, err
	}
	if template.Archived {
		return models.QuizAssignment{}, ErrBadRequest("Template is archived")
	}
	assignment := models.QuizAssignment{
		TemplateID:  templateID,
		AssigneeIDs: assigneeIDs,
		DueDate:     dueDate,
		Visibility:  visibility,
	}
	rec, err := store.Encode(assignment)
	if err != nil {
		return models.QuizAssignment{}, err
	}
	created, err := s.assignments.Create(ctx, rec)
	if err != nil {
		return models.QuizAssignment{}, err
	}
	if err := store.Decode(created, &assignment); err != nil {
		return models.QuizAssignment{}, err
	}
	for _, internID := range assigneeIDs {
		intern, err := s.interns.ByID(ctx, internID)
		if err != nil || intern.UserID == "" {
			continue
		}
		_, _ = s.notifications.Notify(ctx, models.Notification{
			UserID:     intern.UserID,
			Type:       "quiz_assigned",
			Title:      fmt.Sprintf("New quiz: %s", template.Title),
			TargetKind: "quiz_template",
			TargetID:   strconv.FormatInt(templateID, 10),
			ActorName:  actorName,
		})
	}
	return assignment, nil
}

func (s *QuizService) ListAssignments(ctx context.Context, internID int64) ([]models.QuizAssignment, error) {
	query := store.Query{}
	if internID != 0 {
		query["assignee_ids"] = store.OneOf(internID)
	}
	recs, err := s.assignments.Filter(ctx, query, "-created_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.QuizAssignment](recs)
}
