package failreport

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultWebhookTimeoutSeconds = 5

// Config selects which failures are reported and where they go. The file may
// be YAML or JSON; JSON documents are valid YAML.
type Config struct {
	// Statuses limits status reports to these codes. Empty means every non-2xx code.
	Statuses            []int        `yaml:"statuses"`
	SkipTransportErrors bool         `yaml:"skip_transport_errors"`
	Webhook             *WebhookSink `yaml:"webhook"`
	SQS                 *QueueSink   `yaml:"sqs"`
	SNS                 *TopicSink   `yaml:"sns"`
}

// WebhookSink posts the report as JSON.
type WebhookSink struct {
	URL            string            `yaml:"url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// QueueSink sends the report to an SQS queue.
type QueueSink struct {
	QueueURL string `yaml:"queue_url"`
	Region   string `yaml:"region"`
}

// TopicSink publishes the report to an SNS topic.
type TopicSink struct {
	TopicARN string `yaml:"topic_arn"`
	Region   string `yaml:"region"`
}

// LoadConfig reads and validates a report configuration file.
func LoadConfig(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, errors.New("report config path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read report config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode report config: %w", err)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) normalized() Config {
	if c.Webhook != nil {
		w := *c.Webhook
		w.URL = strings.TrimSpace(w.URL)
		if w.TimeoutSeconds <= 0 {
			w.TimeoutSeconds = defaultWebhookTimeoutSeconds
		}
		c.Webhook = &w
	}
	if c.SQS != nil {
		q := *c.SQS
		q.QueueURL = strings.TrimSpace(q.QueueURL)
		q.Region = strings.TrimSpace(q.Region)
		c.SQS = &q
	}
	if c.SNS != nil {
		t := *c.SNS
		t.TopicARN = strings.TrimSpace(t.TopicARN)
		t.Region = strings.TrimSpace(t.Region)
		c.SNS = &t
	}
	return c
}

// Validate checks that at least one sink is configured and that each one is usable.
func (c Config) Validate() error {
	if c.Webhook == nil && c.SQS == nil && c.SNS == nil {
		return errors.New("report config names no sink (webhook, sqs or sns)")
	}
	if c.Webhook != nil && c.Webhook.URL == "" {
		return errors.New("webhook.url is required")
	}
	if c.SQS != nil && (c.SQS.QueueURL == "" || c.SQS.Region == "") {
		return errors.New("sqs.queue_url and sqs.region are required")
	}
	if c.SNS != nil && (c.SNS.TopicARN == "" || c.SNS.Region == "") {
		return errors.New("sns.topic_arn and sns.region are required")
	}
	for _, code := range c.Statuses {
		if code < http.StatusMultipleChoices || code > 599 {
			return fmt.Errorf("statuses: %d is not a failure status code", code)
		}
	}
	return nil
}

// Wants reports whether r passes the configured filters.
func (c Config) Wants(r Report) bool {
	switch r.Kind {
	case KindTransport:
		return !c.SkipTransportErrors
	case KindStatus:
		if len(c.Statuses) == 0 {
			return true
		}
		for _, code := range c.Statuses {
			if code == r.StatusCode {
				return true
			}
		}
		return false
	default:
		return false
	}
}
