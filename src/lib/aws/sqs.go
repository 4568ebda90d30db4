package aws

import (
	"context"
	"errors"
	"log"
	"strings"
	"usatag/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the subset of *sqs.Client used by the producer and consumer.
type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func SQSGetQueueURL(ctx context.Context, client SQSAPI, queue string) (*string, error) {
	qurl, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		log.Printf("Failed to retrieve queue URL for %s: %s\n", queue, err.Error())
		return nil, err
	}
	return qurl.QueueUrl, nil
}

func SQSProduceMessage(ctx context.Context, client SQSAPI, queue, body string) (string, error) {
	qurl, err := SQSGetQueueURL(ctx, client, queue)
	if err != nil {
		return "", err
	}
	out, err := client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    qurl,
		MessageBody: aws.String(body),
	})
	if err != nil {
		log.Printf("[SQS] Error sending message to %s: %s\n", queue, err.Error())
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func SQSDeleteMessage(ctx context.Context, c SQSAPI, qurl *string, msg *sqstypes.Message) {
	_, err := c.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      qurl,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("Error deleting message from queue: %s\n", err.Error())
		return
	}
	log.Printf("Deleted message from queue: %s\n", aws.ToString(msg.MessageId))
}

type SQSConsumer struct {
	Name    string
	client  SQSAPI
	handler types.Handler
}

func NewSQSConsumer(client SQSAPI, queue string, handler types.Handler) *SQSConsumer {
	return &SQSConsumer{
		Name:    queue,
		client:  client,
		handler: handler,
	}
}

// Listen long-polls the queue until ctx is cancelled. Each message is handed
// to the handler and then removed from the queue.
func (s *SQSConsumer) Listen(ctx context.Context) error {
	qurl, err := SQSGetQueueURL(ctx, s.client, s.Name)
	if err != nil {
		return err
	}
	log.Printf("%s: Listening for messages...", s.Name)
	messagesChan := make(chan sqstypes.Message, 10)
	go func(chn chan<- sqstypes.Message) {
		defer close(chn)
		for {
			output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            qurl,
				WaitTimeSeconds:     20,
				MaxNumberOfMessages: 10,
			})
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
					log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
				}
				return
			}
			for _, m := range output.Messages {
				select {
				case chn <- m:
				case <-ctx.Done():
					return
				}
			}
		}
	}(messagesChan)

	for m := range messagesChan {
		body := strings.Clone(aws.ToString(m.Body))
		s.handler(body)
		SQSDeleteMessage(context.WithoutCancel(ctx), s.client, qurl, &m)
	}
	return nil
}
