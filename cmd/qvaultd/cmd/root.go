package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/btcq-org/qvault/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagFrom     = "from"
	flagLabel    = "label"
	flagChainID  = "chain-id"
	flagBackend  = "db-backend"
	flagToken    = "token"
	flagVault    = "vault"
	flagAmount   = "amount"
	flagDecimals = "decimals"
)

// DefaultHome is where state and config live unless --home says otherwise.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qvault"
	}
	return filepath.Join(home, ".qvault")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qvaultd",
		Short: "Local host for the cw20 vault and token contracts",
		Long: `qvaultd runs the cw20 vault and a reference cw20 token in process,
against a local state database. Transactions are applied atomically: a
failure anywhere in the call chain leaves state untouched.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String(flagHome, DefaultHome(), "Directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "Log level (trace|debug|info|warn|error), overrides config")

	rootCmd.AddCommand(
		initCmd(),
		txCmd(),
		queryCmd(),
		msgCmd(),
		keysCmd(),
	)
	return rootCmd
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(w, log.LevelOption(lvl), log.ColorOption(false)), nil
}

// openApp loads the config under --home and opens the host on its database.
// The caller closes the host.
func openApp(cmd *cobra.Command) (*app.App, error) {
	home, _ := cmd.Flags().GetString(flagHome)
	cfg, err := app.GetConfig(home)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if s, _ := cmd.Flags().GetString(flagLogLevel); s != "" {
		level = s
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, err
	}
	db, err := app.OpenDB(home, *cfg)
	if err != nil {
		return nil, err
	}
	a, err := app.New(db, logger, *cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.json into --home and create the state database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			cfg := app.DefaultConfig()
			cfg.ChainID, _ = cmd.Flags().GetString(flagChainID)
			cfg.DBBackend, _ = cmd.Flags().GetString(flagBackend)
			if s, _ := cmd.Flags().GetString(flagLogLevel); s != "" {
				cfg.LogLevel = s
			}
			if err := app.WriteConfig(home, cfg); err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd, cfg)
		},
	}
	cmd.Flags().String(flagChainID, app.DefaultChainID, "Chain id reported to contracts")
	cmd.Flags().String(flagBackend, app.DefaultConfig().DBBackend, "State database backend (goleveldb|memdb)")
	return cmd
}
