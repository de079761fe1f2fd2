package main

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/cache"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/pagination"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

type demoTask struct {
	Title       string
	Description string
	DueInDays   int
	Status      model.TaskStatus
}

var demoTasks = []demoTask{
	{Title: "Set up project board", Description: "Columns for pending, in progress and done", DueInDays: 1, Status: model.TaskStatusCompleted},
	{Title: "Write API documentation", Description: "Cover filters and pagination", DueInDays: 3, Status: model.TaskStatusInProgress},
	{Title: "Review pull requests", Description: "Backlog from last sprint", DueInDays: 2, Status: model.TaskStatusPending},
	{Title: "Plan release", Description: "Agree on scope and date", DueInDays: 7, Status: model.TaskStatusPending},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Seeding never issues tokens, so no redis is needed.
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(cache.Disabled()))
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, pagination.New(cfg.PageSize, cfg.MaxPageSize))

	ctx := context.Background()

	admin, err := seedAdmin(ctx, authService, userService, service.RegisterInput{
		Fullname:        getEnv("SEED_ADMIN_FULLNAME", "Administrator"),
		Phone:           getEnv("SEED_ADMIN_PHONE", "0000000000"),
		Email:           getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		Password:        getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		ConfirmPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	})
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Printf("Admin user ready: %s (id=%d)", admin.Email, admin.ID)

	created, err := seedTasks(ctx, taskService, &auth.Identity{UserID: admin.ID, Email: admin.Email})
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Println("=== Seed Summary ===")
	log.Printf("Demo tasks created: %d", created)
	log.Println("Seed script completed successfully!")
}

// seedAdmin registers the admin account, or reuses an existing one with the
// same email, and grants it admin rights.
func seedAdmin(ctx context.Context, authService service.AuthService, userService service.UserService, in service.RegisterInput) (*model.User, error) {
	_, err := authService.Register(ctx, in)
	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		log.Printf("Registered %s", in.Email)
	case errors.As(err, &verr):
		if _, taken := verr.Fields["email"]; !taken {
			return nil, err
		}
		log.Printf("User %s already exists, promoting", in.Email)
	default:
		return nil, err
	}

	return userService.GrantAdmin(ctx, in.Email)
}

// seedTasks adds the demo tasks for owner unless it already has tasks.
func seedTasks(ctx context.Context, taskService service.TaskService, owner *auth.Identity) (int, error) {
	existing, err := taskService.List(ctx, owner, url.Values{})
	if err != nil {
		return 0, err
	}
	if existing.Page.Count > 0 {
		log.Printf("Owner already has %d tasks, skipping demo tasks", existing.Page.Count)
		return 0, nil
	}

	today := time.Now().UTC()
	created := 0
	for _, demo := range demoTasks {
		status := string(demo.Status)
		task, err := taskService.Create(ctx, owner, service.TaskInput{
			Title:       demo.Title,
			Description: demo.Description,
			DueDate:     today.AddDate(0, 0, demo.DueInDays).Format(model.DateLayout),
			Status:      &status,
		})
		if err != nil {
			log.Printf("Warning: failed to create task %q: %v", demo.Title, err)
			continue
		}
		log.Printf("Created task %d: %s", task.ID, task.Title)
		created++
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
