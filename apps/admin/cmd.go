package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/aamritt0/FermiToday-pwa/core/prefs"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db   *sql.DB
	repo prefs.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|down|status [ARGS] - run database migrations")
	fmt.Println("  showprefs                     - print the stored settings")
	fmt.Println("  resetprefs                    - reset settings to defaults and drop the subscription")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	switch args[1] {
	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if migrateCmd.NArg() == 0 {
			migrateCmd.Usage()
			return errHelp
		}
		return cli.migrate(migrateCmd.Args())
	case "showprefs":
		return cli.showPrefs()
	case "resetprefs":
		return cli.resetPrefs()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) showPrefs() error {
	ctx := context.Background()
	s, err := cli.repo.GetSettings(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%+v\n", s)

	rec, err := cli.repo.SavedSubscription(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Println("no push subscription")
	} else {
		fmt.Printf("subscription: %s\n", rec.Endpoint)
	}
	return nil
}

func (cli *commandLine) resetPrefs() error {
	ctx := context.Background()
	if err := cli.repo.ClearSubscription(ctx); err != nil {
		return err
	}
	if err := cli.repo.SaveSettings(ctx, prefs.DefaultSettings()); err != nil {
		return err
	}
	fmt.Println("settings reset")
	return nil
}
