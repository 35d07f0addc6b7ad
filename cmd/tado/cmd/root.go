package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	tado "github.com/tj-smith47/tado-go"
	"github.com/tj-smith47/tado-go/internal/config"
	"github.com/tj-smith47/tado-go/internal/logging"
	"github.com/tj-smith47/tado-go/store/redisstore"
	"github.com/tj-smith47/tado-go/store/sqlitestore"
)

var version = "0.1.0"

var errNotLoggedIn = errors.New("not logged in, run 'tado login' first")

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tado",
		Short: "Control a tado° smart heating system",
		Long: `tado talks to the tado° cloud API.

Log in once with 'tado login', then inspect and control zones:

  tado zones
  tado state 1
  tado set 1 21.5 --for 45m
  tado resume 1
  tado presence away`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetVersionTemplate("tado version {{.Version}}\n")

	// Global flags
	root.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/tado/config.yaml)")
	root.PersistentFlags().Int("home", 0, "home id (overrides the configured home)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log API traffic to stderr")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newZonesCmd(),
		newStateCmd(),
		newSetCmd(),
		newOffCmd(),
		newResumeCmd(),
		newPresenceCmd(),
		newIdentifyCmd(),
	)
	return root
}

// session bundles what a command needs to talk to the API.
type session struct {
	client     *tado.Client
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	closers    []func() error
}

func (s *session) Close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Warn("close_failed", "error", err)
		}
	}
}

// openSession loads the config, opens the token store and restores a saved token.
func openSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if home, _ := cmd.Flags().GetInt("home"); home > 0 {
		cfg.HomeID = home
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		Format: cfg.Log.Format,
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})

	s := &session{cfg: cfg, configPath: path, logger: logger}

	ctx := cmd.Context()
	store, closeStore, err := openTokenStore(ctx, cfg, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		s.closers = append(s.closers, closeStore)
	}

	opts := append(cfg.ClientOptions(),
		tado.WithLogger(logger),
		tado.WithTokenStore(store),
		tado.WithCache(tado.DefaultCacheConfig()),
	)
	client, err := tado.NewClient(opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	if _, err := client.RestoreToken(ctx); err != nil {
		logger.Warn("token_restore_failed", "error", err)
	}

	s.client = client
	return s, nil
}

// openTokenStore builds the configured store. The returned func, if any, releases it.
func openTokenStore(ctx context.Context, cfg *config.Config, dir string) (tado.TokenStore, func() error, error) {
	st := cfg.TokenStore
	switch st.Type {
	case config.StoreMemory:
		return tado.NewMemoryTokenStore(), nil, nil
	case config.StoreSQLite:
		store, err := sqlitestore.New(st.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StoreRedis:
		store, err := redisstore.New(ctx, redisstore.Config{
			Addr:     st.RedisAddr,
			Password: st.RedisPassword,
			DB:       st.RedisDB,
			Key:      st.RedisKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		path := st.Path
		if path == "" {
			path = filepath.Join(dir, "token.json")
		}
		return tado.NewFileTokenStore(path), nil, nil
	}
}

// authedSession is openSession for commands that need a logged-in client.
func authedSession(cmd *cobra.Command) (*session, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, err
	}
	if !s.client.IsAuthenticated() {
		s.Close()
		return nil, errNotLoggedIn
	}
	return s, nil
}

// homeID returns the configured home, or the only home of the account.
func (s *session) homeID(ctx context.Context) (int, error) {
	if s.cfg.HomeID > 0 {
		return s.cfg.HomeID, nil
	}

	me, err := s.client.GetMe(ctx)
	if err != nil {
		return 0, err
	}
	if me == nil || len(me.Homes) == 0 {
		return 0, fmt.Errorf("the account has no homes")
	}
	if len(me.Homes) > 1 {
		return 0, fmt.Errorf("the account has %d homes, pass --home or run 'tado login' to pick one", len(me.Homes))
	}
	return me.Homes[0].ID, nil
}
