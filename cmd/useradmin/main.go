package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - set:  Hash a password and create or update a user
// - hash: Print the bcrypt hash of a password

func main() {
	setCmd := flag.NewFlagSet("set", flag.ExitOnError)
	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)

	setUsername := setCmd.String("username", "", "Username to create or update")
	setPasswordStdin := setCmd.Bool("password-stdin", false, "Read the password from stdin")

	hashPasswordStdin := hashCmd.Bool("password-stdin", false, "Read the password from stdin")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := adminFlags{
		Set: setFlags{
			cmd:           setCmd,
			username:      setUsername,
			passwordStdin: setPasswordStdin,
		},
		Hash: hashFlags{
			cmd:           hashCmd,
			passwordStdin: hashPasswordStdin,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type adminFlags struct {
	Set  setFlags
	Hash hashFlags
}

type setFlags struct {
	cmd           *flag.FlagSet
	username      *string
	passwordStdin *bool
}

type hashFlags struct {
	cmd           *flag.FlagSet
	passwordStdin *bool
}

func runSubcommand(ctx context.Context, flags *adminFlags) error {
	switch os.Args[1] {
	case "set":
		return handleSet(ctx, flags)
	case "hash":
		return handleHash(flags)
	case "help", "-h", "--help":
		printUsage()

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Println(`useradmin provisions users for the signin service.

Usage:
  useradmin set  -username <name> -password-stdin
  useradmin hash -password-stdin

Passwords are only read from stdin so they never appear in process listings or shell history.
Database settings come from config.yaml and the environment, as for the server.`)
}
