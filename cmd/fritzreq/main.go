package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/fritzbox-request/internal/app"
	"github.com/samvad-hq/fritzbox-request/internal/config"
	"github.com/samvad-hq/fritzbox-request/internal/logger"
)

var exampleUsage = strings.TrimSpace(`
  FRITZ_SERVER=fritz.box FRITZ_SID=0123456789abcdef fritzreq "/data.lua?page=overview"
  fritzreq --profile home --method POST "/data.lua?xhr=1&page=netDev"
`)

// errRequestFailed marks a non-2xx answer that has already been described on stderr.
var errRequestFailed = errors.New("request failed")

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errRequestFailed) {
			fmt.Fprintf(os.Stderr, "fritzreq: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		method  string
		profile string
	)

	root := &cobra.Command{
		Use:           "fritzreq <path>",
		Short:         "Send one request to a Fritz!Box management interface",
		Example:       exampleUsage,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if profile != "" {
				cfg.Profile = profile
			}
			return run(cmd.Context(), cfg, args[0], method, stdout, stderr)
		},
	}

	root.Flags().StringVarP(&method, "method", "X", "", "HTTP method (default GET)")
	root.Flags().StringVarP(&profile, "profile", "p", "", "profile id from profiles_file")
	return root
}

func run(ctx context.Context, cfg *config.Config, path, method string, stdout, stderr io.Writer) error {
	sugar, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	requester, err := app.NewRequester(ctx, cfg, nil, logger.New(sugar))
	if err != nil {
		logger.ErrorObj("failed to initialize requester", "error", err)
		return err
	}

	res, err := requester.Do(ctx, path, method)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(stdout, res.Response.Body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if !res.Response.IsSuccess() {
		fmt.Fprintf(stderr, "%d: %s\n", res.Response.StatusCode, res.Response.ErrorMsg)
		return errRequestFailed
	}
	return nil
}
