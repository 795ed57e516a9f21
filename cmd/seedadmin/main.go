// Command seedadmin creates the first administrator account. Registration
// over HTTP always produces regular users, so the initial admin (and any
// later one) is seeded out of band with this tool.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/auth"
	"github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

// readPassword is a seam so tests can feed a password without a terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(syscall.Stdin))
}

func main() {
	cfg := config.LoadConfig()

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("seedadmin: %v", err)
	}
}

func run(cfg *config.Config, in *os.File, out *os.File) error {
	reader := bufio.NewReader(in)

	username, err := prompt(reader, out, "Username: ")
	if err != nil {
		return err
	}
	name, err := prompt(reader, out, "Full name: ")
	if err != nil {
		return err
	}
	email, err := prompt(reader, out, "Email (optional): ")
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Password: ")
	password, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return err
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := seed(context.Background(), cfg, username, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "admin %q created with id %d\n", user.Username, user.ID)
	return nil
}

func prompt(reader *bufio.Reader, out *os.File, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func seed(ctx context.Context, cfg *config.Config, username, name, email, password string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	user, err := rm.Users(db).Create(ctx, &models.User{
		Username:     username,
		PasswordHash: digest,
		Name:         name,
		Email:        email,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUser) {
			return nil, fmt.Errorf("username %q is taken", username)
		}
		return nil, err
	}

	return user, nil
}
