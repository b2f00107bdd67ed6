package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"proofsheet/auth"
	"proofsheet/database"
	"proofsheet/export"
	"proofsheet/models"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.openStore(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All migrations completed!")
			return nil
		},
	}
}

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	var (
		owner  string
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := database.ProjectFilter{Status: models.Status(status), Limit: limit}
			if owner != "" {
				id, err := uuid.Parse(owner)
				if err != nil {
					return fmt.Errorf("invalid --owner: %w", err)
				}
				filter.OwnerID = id
			}
			if filter.Status != "" && !filter.Status.Valid() {
				return fmt.Errorf("invalid --status %q", status)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			projects, err := store.ListProjects(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Status", "Selected", "Created"},
				projectRows(projects),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Only projects owned by this user id")
	cmd.Flags().StringVar(&status, "status", "", "Only projects in this status (New, UnderSelection, Completed)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of projects")
	return cmd
}

func projectRows(projects []models.Project) [][]string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID.String(),
			p.Name,
			string(p.Status),
			strconv.Itoa(len(p.Selected)),
			p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Write a project's copy script to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id: %w", err)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			project, err := store.GetProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			script, err := export.Build(project)
			if err != nil && !errors.Is(err, models.ErrNoSelection) {
				return err
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: project has no selection, script copies nothing")
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			target := filepath.Join(outDir, script.Filename)
			if err := os.WriteFile(target, []byte(script.Text()), 0o644); err != nil {
				return fmt.Errorf("write script: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d files)\n", target, script.Copies)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "Directory to write the script into")
	return cmd
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default photographer if no account exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			if email == "" {
				email = cfg.SeedEmail
			}
			if password == "" {
				password = cfg.SeedPassword
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			svc := auth.NewService(store, cfg.JWTSecret, cfg.JWTExpiration)
			if err := svc.Seed(cmd.Context(), email, password); err != nil {
				return err
			}

			n, err := store.CountUsers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d photographer account(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Seed account email (default SEED_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Seed account password (default SEED_PASSWORD)")
	return cmd
}
