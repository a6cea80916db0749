package main

import (
	"context"
	"fmt"
	"time"

	"travel_booking/internal/bootstrap"
	"travel_booking/internal/config"
	"travel_booking/internal/logger"
	"travel_booking/internal/model"
	"travel_booking/internal/repository"
	"travel_booking/internal/service"
	"travel_booking/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// openStore is replaced in tests to share one store across commands.
var openStore = bootstrap.OpenStore

type env struct {
	cfg   *config.Config
	store *repository.Store
	close func()
}

// boot loads config and opens the store. Opening the store applies the schema
// (Postgres) or indexes (Mongo).
func boot(ctx context.Context) (context.Context, *env, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, err
	}
	log := logger.New(cfg.LogLevel, "console")
	ctx = log.WithContext(ctx)

	store, closeFn, err := openStore(ctx, cfg)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, &env{cfg: cfg, store: store, close: closeFn}, nil
}

// travelctl migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema (Postgres) or indexes (MongoDB)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, e, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied for %s store\n", e.cfg.StoreDriver)
			return nil
		},
	}
}

// travelctl create-admin --username root --email root@example.com --password ...
func newCreateAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			auth := service.NewAuthService(e.store.Users, utils.NewJWTUtil(e.cfg.JWTSecret, e.cfg.JWTExpirationHours), e.cfg.InitialAdminEmail)
			user, err := auth.CreateAdmin(ctx, username, email, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %s\n", user.Email, user.ID.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// travelctl set-order-status <order-id> <Completed|Cancelled>
func newSetOrderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-order-status <order-id> <status>",
		Short: "Move a pending order to Completed or Cancelled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			orders := service.NewOrderService(e.store.Orders)
			order, err := orders.UpdateStatus(ctx, args[0], model.OrderStatus(args[1]))
			if err != nil {
				return fmt.Errorf("set order status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", order.ID.Hex(), order.Status)
			return nil
		},
	}
}

// travelctl show-user <user-id>
func newShowUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-user <user-id>",
		Short: "Print an account's username, email and role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := primitive.ObjectIDFromHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			ctx, e, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			user, err := e.store.Users.FindByID(ctx, id)
			if err != nil {
				return fmt.Errorf("find user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("user %s not found", id.Hex())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id:       %s\nusername: %s\nemail:    %s\nrole:     %s\ncreated:  %s\n",
				user.ID.Hex(), user.Username, user.Email, user.Role, user.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}
}
