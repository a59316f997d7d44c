package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/threadnexus/nexus/config"
	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/reconcile"
	"github.com/threadnexus/nexus/repo"
)

func main() {
	err := newCLI().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "nexus",
		Usage: "Thread Nexus forum server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory of the .env and config.yaml files",
				EnvVars: []string{"NEXUS_DIR"},
				Value:   ".",
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serveAction,
			},
			{
				Name:      "token",
				Usage:     "issue a credential for an email",
				ArgsUsage: "<email>",
				Action: withApp(func(c *cli.Context, a *app) error {
					token, err := a.notary.Issue(c.Args().First())
					if err != nil {
						return err
					}

					_, err = fmt.Fprintln(c.App.Writer, token)
					return err
				}),
			},
			{
				Name:      "promote",
				Usage:     "grant the admin role to an existing user",
				ArgsUsage: "<email>",
				Action: withApp(func(c *cli.Context, a *app) error {
					role := model.Admin
					res, err := a.repos.Users.Patch(c.Context, c.Args().First(), &model.UserPatch{UserRole: &role})
					if err != nil {
						return err
					} else if res.MatchedCount == 0 {
						return fmt.Errorf("user %q not found", c.Args().First())
					}

					_, err = fmt.Fprintln(c.App.Writer, "promoted", c.Args().First())
					return err
				}),
			},
			{
				Name:  "reconcile",
				Usage: "repair the comment counts of all posts",
				Action: withApp(func(c *cli.Context, a *app) error {
					result, err := reconcile.Run(c.Context, a.repos)
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(c.App.Writer, "checked %d posts, repaired %d\n", result.Checked, result.Repaired)
					return err
				}),
			},
			{
				Name:  "indexes",
				Usage: "ensure the database indexes",
				Action: withApp(func(c *cli.Context, a *app) error {
					return repo.Indexer().Ensure(a.store)
				}),
			},
		},
	}
}

func loadApp(c *cli.Context) (*app, error) {
	// load config
	cfg, err := config.Load(c.String("dir"))
	if err != nil {
		return nil, err
	}

	return newApp(cfg)
}

func serveAction(c *cli.Context) error {
	// load app
	a, err := loadApp(c)
	if err != nil {
		return err
	}

	return a.run()
}

func withApp(fn func(*cli.Context, *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		// ensure context
		if c.Context == nil {
			c.Context = context.Background()
		}

		// load app
		a, err := loadApp(c)
		if err != nil {
			return err
		}

		// ensure store is closed
		defer a.store.Close()

		return fn(c, a)
	}
}
