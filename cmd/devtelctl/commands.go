package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository/postgre"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	webhookRepo "github.com/DarshanCode2005/gitmesh/internal/webhook/repository/postgre"
	webhookUC "github.com/DarshanCode2005/gitmesh/internal/webhook/usecase"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
	workspaceRepo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository/postgre"
	workspaceUC "github.com/DarshanCode2005/gitmesh/internal/workspace/usecase"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

func newMigrateCmd(flags *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, flags, func(ctx context.Context, db *bun.DB, l log.Logger) error {
				if err := schema.Migrate(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}

func newSweepCmd(flags *dbFlags) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark webhook logs stuck in received as error",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, flags, func(ctx context.Context, db *bun.DB, l log.Logger) error {
				uc := webhookUC.New(
					l,
					workspaceUC.New(workspaceRepo.New(db, l), l),
					webhookRepo.New(db, l),
					issueRepo.New(db, l),
					nil,
					nil,
					webhook.Options{},
				)
				n, err := uc.SweepStale(ctx, olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "swept %d webhook logs\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 15*time.Minute, "Only sweep logs received before now minus this duration")
	return cmd
}

func newSignCmd() *cobra.Command {
	var secret, file string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the X-Hub-Signature-256 value for a payload",
		Long:  "Reads the payload from --file, or stdin when --file is empty or \"-\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret is required")
			}

			var payload []byte
			var err error
			if file == "" || file == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), webhook.Sign(secret, payload))
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Webhook secret")
	cmd.Flags().StringVar(&file, "file", "", "Payload file")
	return cmd
}

func newWorkspaceCmd(flags *dbFlags) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}

	var tenant, name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace and print its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, flags, func(ctx context.Context, db *bun.DB, l log.Logger) error {
				uc := workspaceUC.New(workspaceRepo.New(db, l), l)
				ws, err := uc.CreateWorkspace(ctx, workspace.CreateWorkspaceInput{TenantID: tenant, Name: name})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ws.ID)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&tenant, "tenant", "", "Tenant id")
	createCmd.Flags().StringVar(&name, "name", "", "Workspace name")

	workspaceCmd.AddCommand(createCmd)
	return workspaceCmd
}

func newIntegrationCmd(flags *dbFlags) *cobra.Command {
	integrationCmd := &cobra.Command{
		Use:   "integration",
		Short: "Manage provider integrations",
	}

	var workspaceID, secret, token string
	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect GitHub to a workspace, replacing any active integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, flags, func(ctx context.Context, db *bun.DB, l log.Logger) error {
				uc := workspaceUC.New(workspaceRepo.New(db, l), l)
				in, err := uc.ConnectIntegration(ctx, workspace.ConnectIntegrationInput{
					WorkspaceID:   workspaceID,
					Provider:      model.ProviderGitHub,
					WebhookSecret: secret,
					AccessToken:   token,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), in.ID)
				return nil
			})
		},
	}
	connectCmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace id")
	connectCmd.Flags().StringVar(&secret, "secret", "", "Webhook secret; empty disables verification")
	connectCmd.Flags().StringVar(&token, "token", "", "Provider access token")

	disconnectCmd := &cobra.Command{
		Use:   "disconnect <integration-id>",
		Short: "Deactivate an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, flags, func(ctx context.Context, db *bun.DB, l log.Logger) error {
				uc := workspaceUC.New(workspaceRepo.New(db, l), l)
				if err := uc.DisconnectIntegration(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "disconnected")
				return nil
			})
		},
	}

	integrationCmd.AddCommand(connectCmd, disconnectCmd)
	return integrationCmd
}
