package services

import (
	"context"
	"testing"
	"time"

	"ascenda-backend-go/internal/config"
	"ascenda-backend-go/internal/kv"
	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/seed"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg := config.Config{
		MediaStoragePath: t.TempDir(),
		MetricsDiskPath:  "/",
	}
	tokens := TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "ascenda-test",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
	registry, err := NewRegistry(context.Background(), kv.NewMemory(), cfg, tokens)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	registry.Quizzes.generateDelay = time.Millisecond
	return registry
}

func TestRegistrySeedsDemoData(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	interns, err := r.Interns.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List interns: %v", err)
	}
	if len(interns) != 2 {
		t.Fatalf("expected 2 seeded interns, got %d", len(interns))
	}

	courses, err := r.Courses.List(ctx, CourseFilter{}, "", 0)
	if err != nil {
		t.Fatalf("List courses: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 seeded courses, got %d", len(courses))
	}

	managers, err := r.Users.ByRole(ctx, models.RoleManager)
	if err != nil {
		t.Fatalf("ByRole: %v", err)
	}
	if len(managers) != 1 || managers[0].Email != "ana.ribeiro@ascenda.dev" {
		t.Fatalf("unexpected managers: %v", managers)
	}
	if managers[0].PasswordHash != "" {
		t.Fatal("password hash leaked from ByRole")
	}
}

func TestSeededUserIDsAreStable(t *testing.T) {
	first := newTestRegistry(t)
	second := newTestRegistry(t)
	ctx := context.Background()

	a, err := first.Users.ByEmail(ctx, "ana.ribeiro@ascenda.dev")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	b, err := second.Users.ByEmail(ctx, "ana.ribeiro@ascenda.dev")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if a.ID != seed.ManagerUserID || a.ID != b.ID {
		t.Fatalf("seeded ids differ across deployments: %q vs %q", a.ID, b.ID)
	}

	// Seeded interns link back to their accounts.
	intern, err := first.Interns.ByUserID(ctx, seed.InternUserIDs[0])
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if intern.ID != 1 {
		t.Fatalf("intern for first seeded account = %d, want 1", intern.ID)
	}
}

func TestSeededLoginWorks(t *testing.T) {
	r := newTestRegistry(t)

	user, err := r.Users.Authenticate(context.Background(), "Ana.Ribeiro@ascenda.dev", "manager123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Role != models.RoleManager {
		t.Fatalf("expected manager role, got %s", user.Role)
	}

	if _, err := r.Users.Authenticate(context.Background(), "ana.ribeiro@ascenda.dev", "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
