package failreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Notifier sends reports that pass the configured filters to every sink.
// A nil Notifier reports nothing.
type Notifier struct {
	cfg   Config
	sinks []sink
}

// NewNotifier validates cfg and builds its sinks. AWS credentials come from
// the default chain.
func NewNotifier(ctx context.Context, cfg Config) (*Notifier, error) {
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var sinks []sink
	if cfg.Webhook != nil {
		sinks = append(sinks, newWebhookSink(*cfg.Webhook))
	}
	if cfg.SQS != nil {
		awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.SQS.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config for sqs: %w", err)
		}
		sinks = append(sinks, &queueSink{queueURL: cfg.SQS.QueueURL, client: sqs.NewFromConfig(awsCfg)})
	}
	if cfg.SNS != nil {
		awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.SNS.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config for sns: %w", err)
		}
		sinks = append(sinks, &topicSink{topicARN: cfg.SNS.TopicARN, client: sns.NewFromConfig(awsCfg)})
	}
	return &Notifier{cfg: cfg, sinks: sinks}, nil
}

// Sinks names the configured sinks in delivery order.
func (n *Notifier) Sinks() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.sinks))
	for _, s := range n.sinks {
		names = append(names, s.name())
	}
	return names
}

// Notify delivers r to every sink and returns how many accepted it. Reports
// filtered out by the config are skipped silently.
func (n *Notifier) Notify(ctx context.Context, r Report) (int, error) {
	if n == nil || len(n.sinks) == 0 || !n.cfg.Wants(r) {
		return 0, nil
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	attrs := r.attributes()

	delivered := 0
	var errs []error
	for _, s := range n.sinks {
		if err := s.deliver(ctx, payload, attrs); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name(), err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}
