package failreport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/fritzbox-request/pkg/httpclient"
)

// sink delivers an encoded report. attrs carry the routing hints for brokers.
type sink interface {
	name() string
	deliver(ctx context.Context, payload []byte, attrs map[string]string) error
}

type webhookSink struct {
	url     string
	headers map[string]string
	client  *resty.Client
}

func newWebhookSink(cfg WebhookSink) *webhookSink {
	return &webhookSink{
		url:     cfg.URL,
		headers: cfg.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
	}
}

func (w *webhookSink) name() string { return "webhook" }

func (w *webhookSink) deliver(ctx context.Context, payload []byte, _ map[string]string) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeaders(w.headers).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook answered %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	return nil
}

func snippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type queueSink struct {
	queueURL string
	client   sqsAPI
}

func (q *queueSink) name() string { return "sqs" }

func (q *queueSink) deliver(ctx context.Context, payload []byte, attrs map[string]string) error {
	msgAttrs := make(map[string]sqstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		msgAttrs[k] = sqstypes.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
	}
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(q.queueURL),
		MessageBody:       aws.String(string(payload)),
		MessageAttributes: msgAttrs,
	})
	if err != nil {
		return fmt.Errorf("send report to %s: %w", q.queueURL, err)
	}
	return nil
}

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type topicSink struct {
	topicARN string
	client   snsAPI
}

func (t *topicSink) name() string { return "sns" }

func (t *topicSink) deliver(ctx context.Context, payload []byte, attrs map[string]string) error {
	msgAttrs := make(map[string]snstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		msgAttrs[k] = snstypes.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
	}
	_, err := t.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(t.topicARN),
		Message:           aws.String(string(payload)),
		MessageAttributes: msgAttrs,
	})
	if err != nil {
		return fmt.Errorf("publish report to %s: %w", t.topicARN, err)
	}
	return nil
}
