package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/kundali/internal/bootstrap"
	"github.com/yanqian/kundali/internal/infra/config"
	"github.com/yanqian/kundali/pkg/logger"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the chart API",
	Long: `Sign a token with the configured auth secret (AUTH_SECRET).

Example:
  kundali token --subject asha --ttl 72h`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject, used as the chart owner")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default auth.tokenTtl)")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return errors.New("auth secret is not configured; set AUTH_SECRET or auth.secret")
	}

	svc := bootstrap.InitializeAuthService(cfg, logger.NewWithWriter(os.Stderr))
	resp, err := svc.IssueToken(tokenSubject, tokenTTL)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
