package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/fritzbox-request/internal/config"
	"github.com/samvad-hq/fritzbox-request/internal/logger"
	"github.com/samvad-hq/fritzbox-request/pkg/failreport"
	"github.com/samvad-hq/fritzbox-request/pkg/fritzrequest"
	"github.com/samvad-hq/fritzbox-request/pkg/httpclient"
	"github.com/samvad-hq/fritzbox-request/pkg/profiles"
)

// Requester wires configuration, the dispatcher and failure reporting together.
type Requester struct {
	opts       fritzrequest.Options
	profileID  string
	dispatcher *fritzrequest.Dispatcher
	notifier   *failreport.Notifier
	log        logger.Logger
}

// Result is the outcome of one Requester.Do call.
type Result struct {
	Response *fritzrequest.Response
	// Reported is the number of sinks that accepted a failure report.
	Reported int
}

// NewRequester builds a requester runtime from config. A nil client selects the resty transport.
func NewRequester(ctx context.Context, cfg *config.Config, client httpclient.Client, log logger.Logger) (*Requester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts, profileID, err := resolveOptions(cfg)
	if err != nil {
		return nil, err
	}
	log.InfoObj("connection resolved", "connection", map[string]any{
		"profile":             profileID,
		"server":              opts.Server,
		"protocol":            opts.WithDefaults().Protocol,
		"has_sid":             opts.SID != "",
		"remove_sid_from_uri": opts.RemoveSIDFromURI,
	})

	notifier, err := buildNotifier(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = httpclient.NewRestyClient(cfg.RequestTimeout)
	}

	return &Requester{
		opts:       opts,
		profileID:  profileID,
		dispatcher: fritzrequest.NewDispatcher(client, log),
		notifier:   notifier,
		log:        log,
	}, nil
}

// resolveOptions picks the named profile when one is configured, else the plain environment settings.
func resolveOptions(cfg *config.Config) (fritzrequest.Options, string, error) {
	name := strings.TrimSpace(cfg.Profile)
	if name == "" {
		return cfg.Options(), "", nil
	}
	if strings.TrimSpace(cfg.ProfilesFile) == "" {
		return fritzrequest.Options{}, "", fmt.Errorf("profile %q requested but profiles_file is not set", name)
	}

	reg, err := profiles.LoadRegistry(cfg.ProfilesFile)
	if err != nil {
		return fritzrequest.Options{}, "", fmt.Errorf("load profiles registry: %w", err)
	}
	p, ok := reg.ByID(name)
	if !ok {
		return fritzrequest.Options{}, "", fmt.Errorf("profile %q not found in %s", name, cfg.ProfilesFile)
	}
	opts := p.Options()
	// An explicitly configured sid wins over the one stored in the profile.
	if cfg.SID != "" {
		opts.SID = cfg.SID
	}
	return opts, p.ID, nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) (*failreport.Notifier, error) {
	if strings.TrimSpace(cfg.ReportFile) == "" {
		return nil, nil
	}

	reportCfg, err := failreport.LoadConfig(cfg.ReportFile)
	if err != nil {
		return nil, fmt.Errorf("load report config: %w", err)
	}
	n, err := failreport.NewNotifier(ctx, reportCfg)
	if err != nil {
		return nil, fmt.Errorf("build failure notifier: %w", err)
	}

	log.InfoObj("failure reporting enabled", "report_meta", map[string]any{
		"sinks":                 n.Sinks(),
		"statuses":              reportCfg.Statuses,
		"skip_transport_errors": reportCfg.SkipTransportErrors,
	})
	return n, nil
}

// Options returns the effective connection options.
func (r *Requester) Options() fritzrequest.Options { return r.opts.WithDefaults() }

// Do sends one request. Non-2xx responses are classified and reported but are
// not returned as errors; transport and configuration errors are.
func (r *Requester) Do(ctx context.Context, path, method string) (Result, error) {
	if r == nil || r.dispatcher == nil {
		return Result{}, fmt.Errorf("requester is not initialized")
	}

	req := failreport.Request{
		ProfileID: r.profileID,
		Server:    r.opts.Server,
		Method:    method,
		Path:      path,
	}

	resp, err := r.dispatcher.Request(ctx, path, method, r.opts)
	if err != nil {
		if !fritzrequest.IsConfigError(err) {
			r.report(ctx, failreport.FromTransportError(req, err))
		}
		return Result{}, err
	}

	res := Result{Response: resp}
	if resp.IsSuccess() {
		r.log.DebugObj("request completed", "request_meta", map[string]any{
			"profile":     r.profileID,
			"server":      r.opts.Server,
			"status_code": resp.StatusCode,
		})
		return res, nil
	}

	r.dispatcher.FindFailCause(resp)
	res.Reported = r.report(ctx, failreport.FromResponse(req, resp))
	return res, nil
}

func (r *Requester) report(ctx context.Context, rep failreport.Report) int {
	n, err := r.notifier.Notify(ctx, rep)
	if err != nil {
		r.log.ErrorObj("failure report delivery failed", "error", err)
	}
	return n
}
