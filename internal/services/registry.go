package services

import (
	"context"

	"ascenda-backend-go/internal/config"
	"ascenda-backend-go/internal/kv"
	"ascenda-backend-go/internal/seed"
	"ascenda-backend-go/internal/store"
)

// Registry wires every service over a shared key-value backend. Each
// collection lives under its own store key.
type Registry struct {
	Tokens        TokenService
	Users         *UserService
	Interns       *InternService
	Courses       *CourseService
	Assignments   *AssignmentService
	Tasks         *TaskService
	Vacations     *VacationService
	Notifications *NotificationService
	Chat          *ChatService
	Quizzes       *QuizService
	Media         *MediaService
	Metrics       *MetricsService
	Reports       *ReportService

	ChatHub    *ChatHub
	MetricsHub *MetricsHub
}

const (
	keyUsers           = "ascenda_users"
	keyInterns         = "ascenda_interns"
	keyCourses         = "ascenda_courses"
	keyAssignments     = "ascenda_course_assignments"
	keyTasks           = "ascenda_tasks"
	keyVacations       = "ascenda_vacations"
	keyNotifications   = "ascenda_notifications"
	keyChatMessages    = "ascenda_chat_messages"
	keyQuizTemplates   = "ascenda_quiz_templates"
	keyGeneratedQuiz   = "ascenda_generated_quizzes"
	keyQuizAssignments = "ascenda_quiz_assignments"
	keyMediaAssets     = "ascenda_media_assets"
	keyMetricSamples   = "ascenda_metric_samples"
)

func NewRegistry(ctx context.Context, backend kv.Store, cfg config.Config, tokens TokenService) (*Registry, error) {
	seededUsers, err := seed.Users(tokens.HashPassword)
	if err != nil {
		return nil, err
	}
	opts := store.Options{Version: seed.Version}

	users, err := store.New(ctx, backend, keyUsers, seededUsers, opts)
	if err != nil {
		return nil, err
	}
	interns, err := store.New(ctx, backend, keyInterns, seed.Interns(), opts)
	if err != nil {
		return nil, err
	}
	courses, err := store.New(ctx, backend, keyCourses, seed.Courses(), opts)
	if err != nil {
		return nil, err
	}
	assignments, err := store.New(ctx, backend, keyAssignments, nil, opts)
	if err != nil {
		return nil, err
	}
	tasks, err := store.New(ctx, backend, keyTasks, nil, opts)
	if err != nil {
		return nil, err
	}
	vacations, err := store.New(ctx, backend, keyVacations, nil, opts)
	if err != nil {
		return nil, err
	}
	notifications, err := store.New(ctx, backend, keyNotifications, nil, opts)
	if err != nil {
		return nil, err
	}
	chatMessages, err := store.New(ctx, backend, keyChatMessages, nil, opts)
	if err != nil {
		return nil, err
	}
	quizTemplates, err := store.New(ctx, backend, keyQuizTemplates, seed.QuizTemplates(), opts)
	if err != nil {
		return nil, err
	}
	generatedQuizzes, err := store.New(ctx, backend, keyGeneratedQuiz, nil, opts)
	if err != nil {
		return nil, err
	}
	quizAssignments, err := store.New(ctx, backend, keyQuizAssignments, nil, opts)
	if err != nil {
		return nil, err
	}
	mediaAssets, err := store.New(ctx, backend, keyMediaAssets, nil, opts)
	if err != nil {
		return nil, err
	}
	metricSamples, err := store.New(ctx, backend, keyMetricSamples, nil, opts)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Tokens:     tokens,
		ChatHub:    NewChatHub(),
		MetricsHub: NewMetricsHub(),
	}
	r.Users = NewUserService(users, tokens)
	r.Interns = NewInternService(interns)
	r.Courses = NewCourseService(courses)
	r.Notifications = NewNotificationService(notifications)
	r.Assignments = NewAssignmentService(assignments, r.Courses, r.Interns, r.Notifications)
	r.Tasks = NewTaskService(tasks)
	r.Vacations = NewVacationService(vacations, r.Interns, r.Users, r.Notifications)
	r.Chat = NewChatService(chatMessages, r.ChatHub)
	r.Quizzes = NewQuizService(quizTemplates, generatedQuizzes, quizAssignments, r.Interns, r.Notifications)
	r.Media = NewMediaService(mediaAssets, cfg.MediaStoragePath)
	r.Metrics = NewMetricsService(metricSamples, cfg.MetricsDiskPath)
	r.Reports = NewReportService(r.Interns, r.Courses, r.Assignments, r.Tasks, r.Vacations)
	return r, nil
}
