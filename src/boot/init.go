package boot

import (
	"context"
	"errors"
	"log"
	"time"
	"usatag/src/config"
	"usatag/src/db"
	"usatag/src/jobs"
	"usatag/src/lib"
	"usatag/src/lib/aws"
	"usatag/src/models"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return db
}

// InitSecrets pulls AWS_SECRETS_ID into the environment when it is set.
func InitSecrets(ctx context.Context) error {
	secretID := config.AWSSecretsID()
	if secretID == "" {
		return nil
	}
	client, err := lib.AWSGetSecretsManagerClient(ctx)
	if err != nil {
		return err
	}
	n, err := aws.LoadSecretsIntoEnv(ctx, client, secretID)
	if err != nil {
		return err
	}
	log.Printf("[Secrets] Loaded %d values from %s\n", n, secretID)
	return nil
}

// SeedAdminUser creates the admin login from ADMIN_* when it does not exist.
func SeedAdminUser(tx *gorm.DB) error {
	admin := config.Admin()
	if admin == nil {
		return nil
	}
	var existing models.User
	err := tx.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	user := models.User{Email: admin.Email, Username: admin.Username, Password: hash}
	if err := tx.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s\n", admin.Email)
	return nil
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(config.JOB_SWEEP_INTERVAL),
		gocron.NewTask(func() {
			UpdateExpiredJobs(config.JOB_EXPIRY)
		}),
		gocron.WithName("expire-jobs"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
}

func StopScheduler() {
	lib.ShutdownScheduler()
}

// UpdateExpiredJobs marks tasks that stayed pending longer than maxAge.
func UpdateExpiredJobs(maxAge time.Duration) int64 {
	db := db.GetDb()
	var affected int64
	err := db.
		Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.JobTask{}).
				Where("status = ?", types.JOB_PENDING).
				Where("created_at < ?", time.Now().Add(-maxAge)).
				Update("status", types.JOB_EXPIRED)
			if res.Error != nil {
				return res.Error
			}
			affected = res.RowsAffected
			return nil
		})
	if err != nil {
		log.Printf("Error while processing expired jobs: %s\n", err.Error())
		return 0
	}
	if affected > 0 {
		log.Printf("Expired %d pending jobs\n", affected)
	}
	return affected
}

// InitWorker starts consuming the deferred update queue when enabled.
func InitWorker(ctx context.Context) *jobs.Worker {
	if !config.QueueWorkerEnabled() {
		log.Println("Queue worker disabled")
		return nil
	}
	q, err := jobs.GetQueue(ctx)
	if err != nil {
		log.Printf("Queue worker not started: %s\n", err.Error())
		return nil
	}
	w := jobs.NewWorker(q)
	w.Start(ctx)
	return w
}
