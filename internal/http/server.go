package httpapi

import (
	"net/http"
	"strconv"

	"ascenda-backend-go/internal/config"
	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	Registry *services.Registry
	Config   config.Config
	Tokens   services.TokenService
}

func NewServer(registry *services.Registry, cfg config.Config) *Server {
	return &Server{
		Registry: registry,
		Config:   cfg,
		Tokens:   registry.Tokens,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	staff := []string{models.RoleMentor, models.RoleManager}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Put("/profile", s.UpdateProfile)
			me.Put("/password", s.ChangePassword)
		})

		api.Route("/interns", func(interns chi.Router) {
			interns.Use(WithAuth(s.Tokens))
			interns.Get("/", s.ListInterns)
			interns.Get("/leaderboard", s.Leaderboard)
			interns.Get("/{internId}", s.GetIntern)
			interns.With(RequireAnyRole(staff...)).Post("/", s.CreateIntern)
			interns.With(RequireAnyRole(staff...)).Put("/{internId}", s.UpdateIntern)
			interns.With(RequireRole(models.RoleManager)).Delete("/{internId}", s.DeleteIntern)
			interns.With(RequireAnyRole(staff...)).Post("/{internId}/performance", s.RecordPerformance)
			interns.Put("/{internId}/well-being", s.SetWellBeing)
		})

		api.Route("/courses", func(courses chi.Router) {
			courses.Use(WithAuth(s.Tokens))
			courses.Get("/", s.ListCourses)
			courses.Get("/{courseId}", s.GetCourse)
			courses.With(RequireAnyRole(staff...)).Post("/", s.CreateCourse)
			courses.With(RequireAnyRole(staff...)).Put("/{courseId}", s.UpdateCourse)
			courses.With(RequireAnyRole(staff...)).Delete("/{courseId}", s.DeleteCourse)
			courses.With(RequireAnyRole(staff...)).Put("/{courseId}/published", s.SetCoursePublished)
			courses.With(RequireAnyRole(staff...)).Post("/{courseId}/assign", s.AssignCourse)
			courses.Get("/{courseId}/assignments", s.ListCourseAssignments)
		})

		api.Route("/assignments", func(assignments chi.Router) {
			assignments.Use(WithAuth(s.Tokens))
			assignments.Get("/{assignmentId}", s.GetAssignment)
			assignments.Put("/{assignmentId}/status", s.SetAssignmentStatus)
			assignments.Put("/{assignmentId}/progress", s.SetAssignmentProgress)
			assignments.With(RequireAnyRole(staff...)).Delete("/{assignmentId}", s.DeleteAssignment)
		})

		api.Route("/tasks", func(tasks chi.Router) {
			tasks.Use(WithAuth(s.Tokens))
			tasks.Get("/", s.ListTasks)
			tasks.With(RequireAnyRole(staff...)).Post("/", s.CreateTask)
			tasks.Put("/{taskId}", s.UpdateTask)
			tasks.With(RequireAnyRole(staff...)).Delete("/{taskId}", s.DeleteTask)
		})

		api.Route("/vacations", func(vacations chi.Router) {
			vacations.Use(WithAuth(s.Tokens))
			vacations.Post("/", s.SubmitVacation)
			vacations.Get("/", s.ListVacations)
			vacations.Get("/{requestId}", s.GetVacation)
			vacations.With(RequireRole(models.RoleManager)).Post("/{requestId}/approve", s.ApproveVacation)
			vacations.With(RequireRole(models.RoleManager)).Post("/{requestId}/reject", s.RejectVacation)
		})

		api.Route("/notifications", func(notifications chi.Router) {
			notifications.Use(WithAuth(s.Tokens))
			notifications.Get("/", s.ListNotifications)
			notifications.Get("/unread-count", s.UnreadNotifications)
			notifications.Post("/{notificationId}/read", s.MarkNotificationRead)
			notifications.Post("/read-all", s.MarkAllNotificationsRead)
		})

		api.Route("/chat", func(chat chi.Router) {
			chat.Use(WithAuth(s.Tokens))
			chat.Get("/{internId}/messages", s.ChatHistory)
			chat.Post("/{internId}/messages", s.SendChatMessage)
			chat.Post("/{internId}/read", s.MarkChatRead)
			chat.Get("/{internId}/unread-count", s.ChatUnreadCount)
		})

		api.Route("/quizzes", func(quizzes chi.Router) {
			quizzes.Use(WithAuth(s.Tokens))
			quizzes.Get("/templates", s.ListQuizTemplates)
			quizzes.Get("/templates/{templateId}", s.GetQuizTemplate)
			quizzes.With(RequireAnyRole(staff...)).Post("/templates", s.CreateQuizTemplate)
			quizzes.With(RequireAnyRole(staff...)).Put("/templates/{templateId}", s.UpdateQuizTemplate)
			quizzes.With(RequireAnyRole(staff...)).Post("/templates/{templateId}/archive", s.ArchiveQuizTemplate)
			quizzes.With(RequireAnyRole(staff...)).Post("/templates/{templateId}/assign", s.AssignQuizTemplate)
			quizzes.With(RequireAnyRole(staff...)).Post("/generate", s.GenerateQuiz)
			quizzes.Get("/generated/{quizId}", s.GetGeneratedQuiz)
			quizzes.Get("/assignments", s.ListQuizAssignments)
		})

		api.Route("/reports", func(reports chi.Router) {
			reports.Use(WithAuth(s.Tokens))
			reports.With(RequireAnyRole(staff...)).Get("/dashboard", s.DashboardReport)
			reports.Get("/interns/{internId}", s.InternReport)
		})

		api.Route("/media", func(media chi.Router) {
			media.Use(WithAuth(s.Tokens))
			media.Post("/uploads/avatar", s.UploadAvatar)
			media.With(RequireAnyRole(staff...)).Post("/uploads/course", s.UploadCourseMedia)
			media.Get("/assets/{assetId}/content", s.MediaContent)
			media.With(RequireRole(models.RoleManager)).Delete("/assets/{assetId}", s.DeleteMediaAsset)
		})

		api.With(WithAuth(s.Tokens), RequireRole(models.RoleManager)).
			Get("/admin/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/chat", s.ChatSocket)
	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}

// ownInternID resolves the intern record behind the authenticated user.
func (s *Server) ownInternID(r *http.Request) (int64, bool) {
	intern, err := s.Registry.Interns.ByUserID(r.Context(), CurrentUserID(r))
	if err != nil {
		return 0, false
	}
	return intern.ID, true
}

// requireInternScope rejects intern-role callers touching another intern's
// resources. Staff roles pass through.
func (s *Server) requireInternScope(w http.ResponseWriter, r *http.Request, internID int64) bool {
	if CurrentRole(r) != models.RoleIntern {
		return true
	}
	own, ok := s.ownInternID(r)
	if !ok || own != internID {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return false
	}
	return true
}

func parseID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
