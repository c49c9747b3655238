package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"payment-ipn-api/internal/config"
)

// SNS Subject 上限 100 字符
const snsSubjectMaxLen = 100

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher topic 为 TopicArn
type SNSPublisher struct {
	client snsAPI
}

// NewSNSPublisher 未配置 accessKey 时走默认凭证链（环境变量、实例角色）
func NewSNSPublisher(ctx context.Context, c config.SNSCfg) (*SNSPublisher, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
	return &SNSPublisher{client: client}, nil
}

func (p *SNSPublisher) Publish(ctx context.Context, topic string, body []byte) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(topic),
		Message:  aws.String(string(body)),
	}
	if s := subject(body); s != "" {
		input.Subject = aws.String(s)
	}
	if _, err := p.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish %s failed: %w", topic, err)
	}
	return nil
}

// subject 形如 "Payment payment_completed: <txn>"；消息体不是事件时不设置
func subject(body []byte) string {
	var head struct {
		EventType     string `json:"event_type"`
		TransactionID string `json:"transaction_id"`
	}
	if err := json.Unmarshal(body, &head); err != nil || head.EventType == "" {
		return ""
	}
	// SNS Subject 只接受可打印 ASCII，先替换再截断
	s := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, fmt.Sprintf("Payment %s: %s", head.EventType, head.TransactionID))
	if len(s) > snsSubjectMaxLen {
		s = s[:snsSubjectMaxLen]
	}
	return s
}
