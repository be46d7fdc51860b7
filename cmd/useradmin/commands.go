package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"signin/config"
	"signin/internal/domain/entity"
	"signin/internal/domain/repository"
	"signin/internal/domain/service"
	"signin/internal/infra/auth"
	logs "signin/internal/infra/log"
	"signin/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func handleSet(ctx context.Context, flags *adminFlags) error {
	if err := flags.Set.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse set flags")
	}
	if *flags.Set.username == "" {
		return errors.New("-username is required")
	}
	if !*flags.Set.passwordStdin {
		return errors.New("-password-stdin is required")
	}

	password, err := readPassword(os.Stdin)
	if err != nil {
		return err
	}

	var (
		repo   repository.UserRepository
		hasher service.PasswordHasher
	)
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewUserRepository,
			auth.NewBcryptHasher,
		),
		fx.Populate(&repo, &hasher),
	)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer func() { _ = app.Stop(context.WithoutCancel(ctx)) }()

	if err := setUser(ctx, repo, hasher, *flags.Set.username, password); err != nil {
		return err
	}

	fmt.Printf("User %q saved\n", *flags.Set.username)

	return nil
}

func handleHash(flags *adminFlags) error {
	if err := flags.Hash.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse hash flags")
	}
	if !*flags.Hash.passwordStdin {
		return errors.New("-password-stdin is required")
	}

	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	hasher, err := auth.NewBcryptHasher(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create hasher")
	}

	password, err := readPassword(os.Stdin)
	if err != nil {
		return err
	}

	return printHash(os.Stdout, hasher, password)
}

// readPassword reads the first line of r, without its line terminator.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read password")
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	return password, nil
}

func setUser(ctx context.Context, repo repository.UserRepository, hasher service.PasswordHasher, username, password string) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	if err := repo.Save(ctx, &entity.User{Username: username, PasswordHash: hash}); err != nil {
		return errors.Wrap(err, "failed to save user")
	}

	return nil
}

func printHash(w io.Writer, hasher service.PasswordHasher, password string) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	_, err = fmt.Fprintln(w, hash)

	return errors.WithStack(err)
}
