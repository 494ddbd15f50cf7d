package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/infrastructure/config"
	"github.com/logistics-erp/hrm/internal/infrastructure/logger"
	"github.com/logistics-erp/hrm/internal/infrastructure/persistence/mongodb"
	"go.uber.org/zap"
)

// hrResources lists every protected API resource. The seeded manager role
// gets the full set; narrower roles are managed through the API afterwards.
var hrResources = []string{
	"hr.user", "hr.role",
	"hr.branch", "hr.division", "hr.position",
	"hr.employee", "hr.attendance", "hr.leave", "hr.schedule", "hr.holiday",
	"hr.area", "hr.assignment", "hr.pricing",
	"hr.document",
}

func main() {
	var (
		logLevel      string
		adminPassword string
		timeout       time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&adminPassword, "admin-password", "", "Initial admin password for the seed command (required by seed)")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Overall command timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := mongodb.NewDatabase(ctx, &cfg.Mongo, false)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error("Error closing MongoDB connection", zap.Error(err))
		}
	}()

	switch command {
	case "indexes":
		if err := mongodb.EnsureIndexes(ctx, db.DB); err != nil {
			log.Fatal("Failed to ensure indexes", zap.Error(err))
		}
		log.Info("Indexes ensured")

	case "seed":
		if adminPassword == "" {
			log.Fatal("seed requires -admin-password")
		}
		if err := seed(ctx, db, adminPassword, log); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}

	case "status":
		if err := status(ctx, db, log); err != nil {
			log.Fatal("Status failed", zap.Error(err))
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// seed creates the bootstrap roles and the admin account. Every step is
// idempotent so the command can run on each deployment.
func seed(ctx context.Context, db *mongodb.Database, adminPassword string, log *zap.Logger) error {
	roleRepo := mongodb.NewRoleRepository(db.DB)
	userRepo := mongodb.NewUserRepository(db.DB)

	adminRole, err := ensureRole(ctx, roleRepo, "ADMIN", "Administrator", []string{identity.WildcardPermission}, log)
	if err != nil {
		return err
	}

	managerPerms := make([]string, 0, len(hrResources))
	for _, resource := range hrResources {
		managerPerms = append(managerPerms, resource+":*")
	}
	if _, err := ensureRole(ctx, roleRepo, "HR_MANAGER", "HR Manager", managerPerms, log); err != nil {
		return err
	}

	viewerPerms := make([]string, 0, len(hrResources))
	for _, resource := range hrResources {
		viewerPerms = append(viewerPerms, resource+":read")
	}
	if _, err := ensureRole(ctx, roleRepo, "HR_VIEWER", "HR Viewer", viewerPerms, log); err != nil {
		return err
	}

	exists, err := userRepo.ExistsByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		log.Info("Admin user already exists, skipping")
		return nil
	}

	admin, err := identity.NewUser("admin", adminPassword)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	if err := admin.AssignRole(adminRole.ID); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}
	admin.ForcePasswordChange()
	if err := userRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("save admin user: %w", err)
	}
	log.Info("Admin user created", zap.String("username", "admin"))
	return nil
}

func ensureRole(ctx context.Context, repo identity.RoleRepository, code, name string, permissions []string, log *zap.Logger) (*identity.Role, error) {
	existing, err := repo.FindByCode(ctx, code)
	if err == nil {
		log.Info("Role already exists, skipping", zap.String("code", code))
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup role %s: %w", code, err)
	}

	role, err := identity.NewSystemRole(code, name)
	if err != nil {
		return nil, fmt.Errorf("create role %s: %w", code, err)
	}
	perms := make([]identity.Permission, 0, len(permissions))
	for _, permCode := range permissions {
		perm, err := identity.NewPermissionFromCode(permCode)
		if err != nil {
			return nil, fmt.Errorf("parse permission %s: %w", permCode, err)
		}
		perms = append(perms, *perm)
	}
	if err := role.SetPermissions(perms); err != nil {
		return nil, fmt.Errorf("set permissions on %s: %w", code, err)
	}
	if err := repo.Save(ctx, role); err != nil {
		return nil, fmt.Errorf("save role %s: %w", code, err)
	}
	log.Info("Role created", zap.String("code", code), zap.Int("permissions", len(perms)))
	return role, nil
}

func status(ctx context.Context, db *mongodb.Database, log *zap.Logger) error {
	names, err := db.DB.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	log.Info("Database reachable", zap.Int("collections", len(names)))
	for _, name := range names {
		count, err := db.DB.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", name, err)
		}
		fmt.Printf("  %-24s %d\n", name, count)
	}
	return nil
}

func printUsage() {
	fmt.Println(`HRM database bootstrap tool

Usage:
  migrate [flags] <command>

Commands:
  indexes    Create or update all collection indexes
  seed       Create bootstrap roles and the admin account
  status     Show collections and document counts

Flags:
  -admin-password string   Initial admin password (required by seed)
  -log-level string        Log level (default "info")
  -timeout duration        Overall command timeout (default 1m0s)`)
}
