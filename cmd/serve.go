package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/pbi/internal/admin"
	"github.com/abhisek/pbi/internal/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin view of recorded assessments over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Admin.Addr = addr
		}
		logger := newLogger(cfg, os.Stderr, "admin")

		secret := cfg.Admin.Secret
		if secret == "" {
			if secret, err = randomSecret(); err != nil {
				return err
			}
			logger.Warn("admin.secret not set; sessions will not survive a restart")
		}
		if cfg.Admin.Password == "" {
			return fmt.Errorf("admin.password is not set (config file or PBI_ADMIN_PASSWORD)")
		}

		gate, err := auth.NewGate(cfg.Admin.Username, cfg.Admin.Password, secret, auth.WithTTL(cfg.Admin.SessionTTL))
		if err != nil {
			return fmt.Errorf("create auth gate: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := admin.NewServer(gate, st.CounterRepo(), st.ResultRepo(), logger)
		return srv.ListenAndServe(ctx, cfg.Admin.Addr)
	},
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides admin.addr)")
}
