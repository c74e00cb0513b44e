// Package seed holds the demo dataset a fresh deployment boots with. The
// stores reseed whenever their persisted version tag differs from Version.
package seed

import (
	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

// Version tags every seeded collection. Bump it to force a reseed (or a
// migration, where one is registered) on the next boot.
const Version = "2026-08"

// Fixed ids so the seeded users, interns and courses reference each other
// and reseeds produce the same records on every deployment.
const (
	ManagerUserID = "5f1c8a2e-9d34-4b67-8e05-1a7c3f9d2b40"
	MentorUserID  = "b8e4d6f1-2a59-4c03-9f78-6d1e0b4a8c52"
)

var InternUserIDs = []string{
	"3a9f7c51-e826-4d40-b1c8-0f5e2d9a6b73",
	"d27b4e90-6c15-48fa-a3d9-8b0c5f1e7a24",
}

// Users returns the demo accounts. Passwords are hashed through the
// caller's hash function so the seed never stores plaintext.
func Users(hash func(string) (string, error)) ([]store.Record, error) {
	accounts := []struct {
		id       string
		email    string
		name     string
		role     string
		password string
	}{
		{ManagerUserID, "ana.ribeiro@ascenda.dev", "Ana Ribeiro", models.RoleManager, "manager123"},
		{MentorUserID, "carlos.mota@ascenda.dev", "Carlos Mota", models.RoleMentor, "mentor123"},
		{InternUserIDs[0], "julia.santos@ascenda.dev", "Júlia Santos", models.RoleIntern, "intern123"},
		{InternUserIDs[1], "pedro.lima@ascenda.dev", "Pedro Lima", models.RoleIntern, "intern123"},
	}
	records := make([]store.Record, 0, len(accounts))
	for _, account := range accounts {
		hashed, err := hash(account.password)
		if err != nil {
			return nil, err
		}
		records = append(records, store.Record{
			"id":            account.id,
			"email":         account.email,
			"full_name":     account.name,
			"role":          account.role,
			"password_hash": hashed,
			"status":        "ACTIVE",
		})
	}
	return records, nil
}

func Interns() []store.Record {
	return []store.Record{
		{
			"id":         float64(1),
			"user_id":    InternUserIDs[0],
			"name":       "Júlia Santos",
			"level":      "junior",
			"track":      "frontend",
			"cohort":     "2026-A",
			"skills":     []any{"react", "typescript"},
			"status":     models.InternActive,
			"points":     float64(120),
			"start_date": "2026-02-02",
		},
		{
			"id":         float64(2),
			"user_id":    InternUserIDs[1],
			"name":       "Pedro Lima",
			"level":      "junior",
			"track":      "backend",
			"cohort":     "2026-A",
			"skills":     []any{"go", "sql"},
			"status":     models.InternActive,
			"points":     float64(95),
			"start_date": "2026-02-02",
		},
	}
}

func Courses() []store.Record {
	return []store.Record{
		{
			"id":               float64(1),
			"title":            "Git Fundamentals",
			"description":      "Branching, rebasing and review workflow.",
			"category":         "tooling",
			"difficulty":       "beginner",
			"duration_minutes": float64(90),
			"youtube_id":       "RGOj5yH7evk",
			"published":        true,
			"enrolled_count":   float64(0),
			"completed_count":  float64(0),
		},
		{
			"id":               float64(2),
			"title":            "REST API Design",
			"description":      "Resources, verbs and pagination done right.",
			"category":         "backend",
			"difficulty":       "intermediate",
			"duration_minutes": float64(150),
			"published":        true,
			"enrolled_count":   float64(0),
			"completed_count":  float64(0),
		},
		{
			"id":               float64(3),
			"title":            "Interview Communication",
			"description":      "Presenting your work to stakeholders.",
			"category":         "soft-skills",
			"difficulty":       "beginner",
			"duration_minutes": float64(60),
			"published":        false,
			"enrolled_count":   float64(0),
			"completed_count":  float64(0),
		},
	}
}

func QuizTemplates() []store.Record {
	return []store.Record{
		{
			"id":    float64(1),
			"title": "Git basics check",
			"topic": "git",
			"tags":  []any{"tooling", "git"},
			"questions": map[string]any{
				"easy": []any{
					map[string]any{
						"prompt":        "Which command creates a new branch?",
						"options":       []any{"git branch", "git clone", "git stash", "git tag"},
						"correct_index": float64(0),
					},
				},
			},
			"version":  float64(1),
			"archived": false,
		},
	}
}
