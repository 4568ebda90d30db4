package jobs

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"usatag/src/db"
	"usatag/src/models"
	"usatag/src/types"

	"gorm.io/gorm"
)

type Worker struct {
	queue  Queue
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(q Queue) *Worker {
	return &Worker{queue: q}
}

func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.queue.Listen(ctx, HandleMessage); err != nil {
			log.Printf("[Worker] %s listener stopped: %s\n", w.queue.Name(), err.Error())
		}
	}()
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func HandleMessage(payload string) {
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Printf("[Worker] Invalid job payload: %s\n", err.Error())
		return
	}
	if err := ApplyPurchaseUpdate(&job); err != nil {
		log.Printf("[Worker] Job %s failed: %s\n", job.TaskID, err.Error())
	}
}

// ApplyPurchaseUpdate stores the payment id on the purchase and settles the
// job's bookkeeping row.
func ApplyPurchaseUpdate(job *Job) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Purchase{}).
			Where("id = ?", job.PurchaseID).
			Update("paypal_payment_id", job.PaypalPaymentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrPurchaseNotFound
		}
		return nil
	})

	status := types.JOB_DONE
	errText := ""
	if err != nil {
		status = types.JOB_FAILED
		errText = err.Error()
	}
	if job.TaskID != "" {
		res := db.Model(&models.JobTask{}).
			Where("id = ?", job.TaskID).
			Updates(map[string]any{"status": status, "error": errText})
		if res.Error != nil {
			log.Printf("[Worker] Error updating job %s: %s\n", job.TaskID, res.Error.Error())
		} else if res.RowsAffected == 0 {
			log.Printf("[Worker] Job %s has no task row\n", job.TaskID)
		}
	}
	return err
}
