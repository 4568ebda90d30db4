package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"usatag/src/config"
	"usatag/src/db"
	"usatag/src/lib"
	"usatag/src/models"
	"usatag/src/types"

	"gorm.io/gorm"
)

// Job is the message placed on the queue for a completed payment.
type Job struct {
	TaskID          string           `json:"taskId"`
	PurchaseID      string           `json:"purchaseID"`
	PaypalPaymentID string           `json:"paypalPaymentId"`
	From            string           `json:"pFrom"`
	Purchase        *models.Purchase `json:"purchase"`
}

type Queue interface {
	Name() string
	Enqueue(ctx context.Context, body string) error
	// Listen blocks, passing every message to handler, until ctx is done.
	Listen(ctx context.Context, handler types.Handler) error
}

var (
	queueMu sync.Mutex
	queue   Queue
)

// CreateQueue builds the backend named by QUEUE_DRIVER.
func CreateQueue(ctx context.Context) (Queue, error) {
	name := config.QueueName()
	switch driver := config.QueueDriver(); driver {
	case config.QUEUE_REDIS:
		rdb := lib.GetRedisClient()
		if rdb == nil {
			return nil, fmt.Errorf("redis client unavailable")
		}
		if err := lib.PingRedis(ctx); err != nil {
			log.Printf("[Queue] redis is not reachable yet: %s\n", err.Error())
		}
		return NewRedisQueue(rdb, name), nil
	case config.QUEUE_SQS:
		client, err := lib.AWSGetSQSClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewSQSQueue(client, name), nil
	case config.QUEUE_LOCAL:
		return NewLocalQueue(name), nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", driver)
	}
}

func GetQueue(ctx context.Context) (Queue, error) {
	queueMu.Lock()
	defer queueMu.Unlock()
	if queue != nil {
		return queue, nil
	}
	q, err := CreateQueue(ctx)
	if err != nil {
		log.Printf("[Queue] Error creating queue: %s\n", err.Error())
		return nil, err
	}
	log.Printf("[Queue] Using %s backend for %s\n", q.Name(), config.QueueName())
	queue = q
	return q, nil
}

// NewQueue Replace queue instance with custom implementation
func NewQueue(q Queue) Queue {
	queueMu.Lock()
	defer queueMu.Unlock()
	queue = q
	return queue
}

// EnqueuePurchaseUpdate commits a pending JobTask and then pushes the job. The
// row is visible before any worker can pop the message; a failed push marks it
// failed.
func EnqueuePurchaseUpdate(ctx context.Context, q Queue, purchase *models.Purchase, paypalPaymentID, from string) (string, error) {
	job := Job{
		PurchaseID:      purchase.ID,
		PaypalPaymentID: paypalPaymentID,
		From:            from,
		Purchase:        purchase,
	}
	task := models.JobTask{
		Name:       config.QueueName(),
		Backend:    q.Name(),
		PurchaseID: purchase.ID,
		Payload: types.JSONB{
			"purchaseID":      job.PurchaseID,
			"paypalPaymentId": job.PaypalPaymentID,
			"pFrom":           job.From,
			"purchase":        purchase,
		},
	}
	db := db.GetDb()
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&task).Error
	}); err != nil {
		log.Printf("[Queue] Error recording job for purchase %s: %s\n", purchase.ID, err.Error())
		return "", err
	}
	job.TaskID = task.ID
	body, err := json.Marshal(&job)
	if err == nil {
		err = q.Enqueue(ctx, string(body))
	}
	if err != nil {
		log.Printf("[Queue] Error enqueueing update for purchase %s: %s\n", purchase.ID, err.Error())
		if uerr := db.Model(&models.JobTask{}).
			Where("id = ?", task.ID).
			Updates(map[string]any{"status": types.JOB_FAILED, "error": err.Error()}).
			Error; uerr != nil {
			log.Printf("[Queue] Error updating job %s: %s\n", task.ID, uerr.Error())
		}
		return "", err
	}
	log.Printf("[Queue] Enqueued job %s for purchase %s\n", task.ID, purchase.ID)
	return task.ID, nil
}
