package models

// Roles carried in access tokens. Mentors cover the sponsoring mentors
// assigned to each intern as well.
const (
	RoleIntern  = "INTERN"
	RoleMentor  = "MENTOR"
	RoleManager = "MANAGER"
)

const (
	InternActive    = "active"
	InternPaused    = "paused"
	InternCompleted = "completed"
)

const (
	AssignmentAssigned   = "assigned"
	AssignmentInProgress = "in_progress"
	AssignmentCompleted  = "completed"
)

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskOverdue    = "overdue"
)

const (
	VacationPending  = "pending"
	VacationApproved = "approved"
	VacationRejected = "rejected"
)

type User struct {
	ID           string  `json:"id,omitempty"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash,omitempty"`
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	Status       string  `json:"status"`
	CreatedDate  string  `json:"created_date,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
	LastLoginAt  *string `json:"last_login_at,omitempty"`
}

type PerformancePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

type Intern struct {
	ID                 int64              `json:"id,omitempty"`
	UserID             string             `json:"user_id,omitempty"`
	Name               string             `json:"name"`
	AvatarURL          *string            `json:"avatar_url,omitempty"`
	Level              string             `json:"level,omitempty"`
	Track              string             `json:"track,omitempty"`
	Cohort             string             `json:"cohort,omitempty"`
	Skills             []string           `json:"skills,omitempty"`
	Status             string             `json:"status"`
	Points             float64            `json:"points"`
	WellBeing          string             `json:"well_being,omitempty"`
	StartDate          string             `json:"start_date,omitempty"`
	EndDate            *string            `json:"end_date,omitempty"`
	PerformanceHistory []PerformancePoint `json:"performance_history,omitempty"`
	CreatedDate        string             `json:"created_date,omitempty"`
	UpdatedAt          string             `json:"updated_at,omitempty"`
}

type Course struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	Difficulty      string  `json:"difficulty,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	YoutubeID       *string `json:"youtube_id,omitempty"`
	MediaAssetID    *string `json:"media_asset_id,omitempty"`
	EnrolledCount   int     `json:"enrolled_count"`
	CompletedCount  int     `json:"completed_count"`
	Published       bool    `json:"published"`
	CreatedDate     string  `json:"created_date,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type CourseAssignment struct {
	ID            int64   `json:"id,omitempty"`
	CourseID      int64   `json:"course_id"`
	InternID      int64   `json:"intern_id"`
	Status        string  `json:"status"`
	Progress      int     `json:"progress"`
	AssignedDate  string  `json:"assigned_date,omitempty"`
	StartedDate   *string `json:"started_date,omitempty"`
	CompletedDate *string `json:"completed_date,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedDate   string  `json:"created_date,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

type Task struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	InternID    int64   `json:"intern_id"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedDate string  `json:"created_date,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type VacationRequest struct {
	ID          int64   `json:"id,omitempty"`
	InternID    int64   `json:"intern_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
	ManagerNote *string `json:"manager_note,omitempty"`
	DecidedAt   *string `json:"decided_at,omitempty"`
	CreatedDate string  `json:"created_date,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type Notification struct {
	ID          int64  `json:"id,omitempty"`
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	TargetKind  string `json:"target_kind,omitempty"`
	TargetID    string `json:"target_id,omitempty"`
	ActorName   string `json:"actor_name,omitempty"`
	Read        bool   `json:"read"`
	CreatedDate string `json:"created_date,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type ChatMessage struct {
	ID          int64  `json:"id,omitempty"`
	InternID    int64  `json:"intern_id"`
	SenderRole  string `json:"sender_role"`
	Text        string `json:"text"`
	Read        bool   `json:"read"`
	CreatedDate string `json:"created_date,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Questions are keyed by difficulty: "easy", "medium", "hard".
type QuizTemplate struct {
	ID          int64                     `json:"id,omitempty"`
	Title       string                    `json:"title"`
	Topic       string                    `json:"topic,omitempty"`
	Questions   map[string][]QuizQuestion `json:"questions"`
	Tags        []string                  `json:"tags,omitempty"`
	Version     int                       `json:"version"`
	Archived    bool                      `json:"archived"`
	CreatedDate string                    `json:"created_date,omitempty"`
	UpdatedAt   string                    `json:"updated_at,omitempty"`
}

type GeneratedQuiz struct {
	ID          int64                     `json:"id,omitempty"`
	Topic       string                    `json:"topic"`
	SourceURL   *string                   `json:"source_url,omitempty"`
	Questions   map[string][]QuizQuestion `json:"questions"`
	CreatedDate string                    `json:"created_date,omitempty"`
	UpdatedAt   string                    `json:"updated_at,omitempty"`
}

type QuizAssignment struct {
	ID          int64   `json:"id,omitempty"`
	TemplateID  int64   `json:"template_id"`
	AssigneeIDs []int64 `json:"assignee_ids"`
	DueDate     *string `json:"due_date,omitempty"`
	Visibility  string  `json:"visibility,omitempty"`
	CreatedDate string  `json:"created_date,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type MediaAsset struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
	Bucket      string `json:"bucket"`
	StorageKey  string `json:"storage_key"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Sha256      string `json:"sha256,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type MetricSample struct {
	ID                string  `json:"id,omitempty"`
	CapturedAt        string  `json:"captured_at"`
	HeapUsedBytes     int64   `json:"heap_used_bytes"`
	SystemMemoryTotal int64   `json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64   `json:"system_memory_used_bytes"`
	DiskTotalBytes    int64   `json:"disk_total_bytes"`
	DiskUsedBytes     int64   `json:"disk_used_bytes"`
	ProcessCpuLoad    float64 `json:"process_cpu_load"`
	SystemCpuLoad     float64 `json:"system_cpu_load"`
	CreatedDate       string  `json:"created_date,omitempty"`
	UpdatedAt         string  `json:"updated_at,omitempty"`
}
