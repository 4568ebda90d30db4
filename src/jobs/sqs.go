package jobs

import (
	"context"
	"usatag/src/config"
	"usatag/src/lib/aws"
	"usatag/src/types"
)

type SQSQueue struct {
	client aws.SQSAPI
	queue  string
}

func NewSQSQueue(client aws.SQSAPI, name string) *SQSQueue {
	return &SQSQueue{client: client, queue: name}
}

func (q *SQSQueue) Name() string {
	return config.QUEUE_SQS
}

func (q *SQSQueue) Enqueue(ctx context.Context, body string) error {
	_, err := aws.SQSProduceMessage(ctx, q.client, q.queue, body)
	return err
}

func (q *SQSQueue) Listen(ctx context.Context, handler types.Handler) error {
	return aws.NewSQSConsumer(q.client, q.queue, handler).Listen(ctx)
}
