// admin 命令行：对当前配置的存储执行维护任务（建表迁移、演示数据、创建特权账号）
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leasehub/internal/app"
	"leasehub/internal/core/config"
	"leasehub/internal/domain"
	"leasehub/internal/service"
)

type runFunc func(ctx context.Context, e *env, args []string) error

type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store domain.Store
	auth  *service.AuthService
	close func()
}

func open(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, flush := app.NewLogger(cfg)
	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		flush()
		return nil, err
	}
	authSvc, _, _ := app.Services(cfg, store, log)
	return &env{
		cfg: cfg, log: log, store: store, auth: authSvc,
		close: func() { closeStore(); flush() },
	}, nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "admin",
		Short:        "leasehub maintenance commands",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")

	withEnv := func(run runFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer e.close()
			return run(cmd.Context(), e, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
				if e.cfg.Store.Driver == "memory" {
					return fmt.Errorf("store.driver is memory, nothing to migrate")
				}
				if err := app.Migrate(ctx, e.store); err != nil {
					return err
				}
				e.log.Info("migrate done", zap.String("driver", e.cfg.Store.Driver))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the demo data set unless it is already present",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
				return service.Seed(ctx, e.store, e.auth, app.SeedOptions(e.cfg), e.log.Named("seed"))
			}),
		},
		createUserCmd(withEnv),
	)
	return root
}

func createUserCmd(withEnv func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var (
		in    domain.RegisterInput
		phone string
		role  string
	)
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with any role",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			in.Role = r
			if phone != "" {
				in.Phone = &phone
			}
			u, err := e.auth.CreateUser(ctx, in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(u)
		}),
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "login name")
	f.StringVar(&in.Password, "password", "", "plain password, stored as a bcrypt hash")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.FullName, "full-name", "", "display name")
	f.StringVar(&phone, "phone", "", "phone number")
	f.StringVar(&role, "role", string(domain.RoleVisitor), "Admin, Tenant, Visitor or Developer")
	for _, name := range []string{"username", "password", "email", "full-name"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
