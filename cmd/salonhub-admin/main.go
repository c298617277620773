package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/salonhub/salonhub-api/config"
	"github.com/salonhub/salonhub-api/internal/adapters/identity"
	"github.com/salonhub/salonhub-api/internal/bootstrap"
	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/data"
	"github.com/salonhub/salonhub-api/internal/devseed"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"create-admin": {
			name:        "create-admin",
			description: "Create a platform operator account with a local credential",
			run:         runCreateAdmin,
		},
		"recount-counters": {
			name:        "recount-counters",
			description: "Recompute employee and branch counters for every company",
			run:         runRecountCounters,
		},
		"list-companies": {
			name:        "list-companies",
			description: "List registered companies with plan usage",
			run:         runListCompanies,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: salonhub-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		if err := writef(tw, "  %s\t%s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func connectDB(cmdCtx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cmdCtx.Config.Postgres,
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
}

func closeDB(cmdCtx *commandContext, db *sql.DB) {
	if err := db.Close(); err != nil {
		cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, "close database failed", "error", err)
	}
}

func runMigrate(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()
	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func runDBSeed(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()
	if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return err
	}
	return devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger)
}

func runCreateAdmin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	name := fs.String("name", "Platform Operator", "display name")
	email := fs.String("email", "", "login email (required)")
	password := fs.String("password", "", "initial password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("create-admin: -email and -password are required")
	}
	if err := domainauth.ValidatePasswordStrength(*password); err != nil {
		return fmt.Errorf("create-admin: %w", err)
	}

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	users := data.NewUserRepo(db)
	exists, err := users.ExistsByEmail(cmdCtx.Ctx, *email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("create-admin: a user with email %q already exists", *email)
	}

	user, err := users.Create(cmdCtx.Ctx, core.CreateUserParams{
		Name:  *name,
		Email: *email,
		Role:  domainauth.RoleSuperAdmin,
	})
	if err != nil {
		return err
	}
	if err := identity.NewLocalProvider(db).CreateCredential(cmdCtx.Ctx, user.ID, *password); err != nil {
		return err
	}

	cmdCtx.Logger.InfoContext(cmdCtx.Ctx, "operator account created", "user_id", user.ID, "email", user.Email)
	return nil
}

func runRecountCounters(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	companies := data.NewCompanyRepo(db)
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		page, listErr := companies.List(cmdCtx.Ctx, pageSize, offset)
		if listErr != nil {
			return listErr
		}
		for _, c := range page {
			employees, recountErr := companies.RecountEmployees(cmdCtx.Ctx, c.ID)
			if recountErr != nil {
				return recountErr
			}
			branches, recountErr := companies.RecountBranches(cmdCtx.Ctx, c.ID)
			if recountErr != nil {
				return recountErr
			}
			cmdCtx.Logger.InfoContext(cmdCtx.Ctx, "recounted",
				"company_id", c.ID, "employees", employees, "branches", branches)
		}
		if len(page) < pageSize {
			return nil
		}
	}
}

func runListCompanies(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	companies, err := data.NewCompanyRepo(db).List(cmdCtx.Ctx, 200, 0)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tEMPLOYEES\tBRANCHES\tACTIVE\n"); err != nil {
		return err
	}
	for _, c := range companies {
		if err := writef(tw, "%s\t%s\t%d/%d\t%d/%d\t%t\n",
			c.ID, c.Name,
			c.CurrentEmployees, c.MaxEmployees,
			c.CurrentBranches, c.MaxBranches,
			c.Active,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
