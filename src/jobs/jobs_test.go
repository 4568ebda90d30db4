package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
	"usatag/src/db"
	"usatag/src/lib"
	"usatag/src/models"
	"usatag/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memoryQueue struct {
	mu   sync.Mutex
	msgs []string
	err  error
}

func (m *memoryQueue) Name() string { return "memory" }

func (m *memoryQueue) Enqueue(ctx context.Context, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, body)
	return nil
}

func (m *memoryQueue) Listen(ctx context.Context, handler types.Handler) error {
	<-ctx.Done()
	return nil
}

type JobsTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *JobsTestSuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)
	sqlDB, err := gdb.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(gdb.AutoMigrate(models.All()...))
	db.NewDB(gdb)
	s.db = gdb
}

func (s *JobsTestSuite) TearDownTest() {
	db.Close()
	db.NewDB(nil)
}

func (s *JobsTestSuite) createPurchase() *models.Purchase {
	p := &models.Purchase{Name: "Maria", Email: "maria@example.com", Total: 150}
	s.Require().NoError(s.db.Create(p).Error)
	return p
}

func (s *JobsTestSuite) TestEnqueueRecordsTask() {
	p := s.createPurchase()
	q := &memoryQueue{}

	taskID, err := EnqueuePurchaseUpdate(context.Background(), q, p, "PAY-1", "web")
	s.Require().NoError(err)
	s.Require().Len(q.msgs, 1)

	body := q.msgs[0]
	s.Equal(taskID, gjson.Get(body, "taskId").String())
	s.Equal(p.ID, gjson.Get(body, "purchaseID").String())
	s.Equal("PAY-1", gjson.Get(body, "paypalPaymentId").String())
	s.Equal("web", gjson.Get(body, "pFrom").String())
	s.Equal("Maria", gjson.Get(body, "purchase.name").String())

	var task models.JobTask
	s.Require().NoError(s.db.First(&task, "id = ?", taskID).Error)
	s.Equal(types.JOB_PENDING, task.Status)
	s.Equal("memory", task.Backend)
	s.Equal(p.ID, task.PurchaseID)
	s.Equal("PAY-1", task.Payload["paypalPaymentId"])
}

func (s *JobsTestSuite) TestEnqueueFailureMarksTaskFailed() {
	p := s.createPurchase()
	q := &memoryQueue{err: errors.New("queue down")}

	_, err := EnqueuePurchaseUpdate(context.Background(), q, p, "PAY-1", "web")
	s.Error(err)

	var tasks []models.JobTask
	s.Require().NoError(s.db.Find(&tasks).Error)
	s.Require().Len(tasks, 1)
	s.Equal(types.JOB_FAILED, tasks[0].Status)
	s.Equal("queue down", tasks[0].Error)
}

func (s *JobsTestSuite) TestApplyPurchaseUpdate() {
	p := s.createPurchase()
	q := &memoryQueue{}
	taskID, err := EnqueuePurchaseUpdate(context.Background(), q, p, "PAY-9", "admin")
	s.Require().NoError(err)

	HandleMessage(q.msgs[0])

	var got models.Purchase
	s.Require().NoError(s.db.First(&got, "id = ?", p.ID).Error)
	s.Equal("PAY-9", got.PaypalPaymentID)

	var task models.JobTask
	s.Require().NoError(s.db.First(&task, "id = ?", taskID).Error)
	s.Equal(types.JOB_DONE, task.Status)
}

func (s *JobsTestSuite) TestApplyPurchaseUpdateMissingPurchase() {
	task := models.JobTask{Name: "complete-update", Backend: "memory", PurchaseID: "gone"}
	s.Require().NoError(s.db.Create(&task).Error)

	err := ApplyPurchaseUpdate(&Job{TaskID: task.ID, PurchaseID: "gone", PaypalPaymentID: "PAY"})
	s.ErrorIs(err, types.ErrPurchaseNotFound)

	s.Require().NoError(s.db.First(&task, "id = ?", task.ID).Error)
	s.Equal(types.JOB_FAILED, task.Status)
	s.Equal("Purchase not found", task.Error)
}

func (s *JobsTestSuite) TestLocalQueueRunsWorker() {
	defer lib.ShutdownScheduler()
	p := s.createPurchase()
	q := NewLocalQueue("complete-update")
	w := NewWorker(q)
	w.Start(context.Background())
	defer w.Stop()

	// wait for the listener to attach
	s.Eventually(func() bool {
		q.mu.RLock()
		defer q.mu.RUnlock()
		return q.handler != nil
	}, time.Second, 10*time.Millisecond)

	taskID, err := EnqueuePurchaseUpdate(context.Background(), q, p, "PAY-LOCAL", "web")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		var task models.JobTask
		if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
			return false
		}
		return task.Status == types.JOB_DONE
	}, 5*time.Second, 20*time.Millisecond)

	var got models.Purchase
	s.Require().NoError(s.db.First(&got, "id = ?", p.ID).Error)
	s.Equal("PAY-LOCAL", got.PaypalPaymentID)
}

// immediateQueue hands every job to the worker before Enqueue returns.
type immediateQueue struct{}

func (immediateQueue) Name() string { return "immediate" }

func (immediateQueue) Enqueue(ctx context.Context, body string) error {
	HandleMessage(body)
	return nil
}

func (immediateQueue) Listen(ctx context.Context, handler types.Handler) error {
	<-ctx.Done()
	return nil
}

func TestEnqueueWithImmediateWorker(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "jobs.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	db.NewDB(gdb)
	defer func() {
		db.Close()
		db.NewDB(nil)
	}()

	p := &models.Purchase{Name: "Maria"}
	require.NoError(t, gdb.Create(p).Error)

	taskID, err := EnqueuePurchaseUpdate(context.Background(), immediateQueue{}, p, "PAY-NOW", "web")
	require.NoError(t, err)

	var task models.JobTask
	require.NoError(t, gdb.First(&task, "id = ?", taskID).Error)
	assert.Equal(t, types.JOB_DONE, task.Status)
	assert.Empty(t, task.Error)

	var got models.Purchase
	require.NoError(t, gdb.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "PAY-NOW", got.PaypalPaymentID)
}

func TestJobsTestSuite(t *testing.T) {
	suite.Run(t, new(JobsTestSuite))
}

func TestRedisQueue(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	q := NewRedisQueue(rdb, "complete-update")
	assert.Equal(t, "redis", q.Name())

	body, _ := json.Marshal(Job{PurchaseID: "p1", PaypalPaymentID: "PAY"})
	mock.ExpectLPush("usatag:queue:complete-update", string(body)).SetVal(1)
	require.NoError(t, q.Enqueue(context.Background(), string(body)))

	mock.ExpectLPush("usatag:queue:complete-update", "x").SetErr(errors.New("READONLY"))
	assert.Error(t, q.Enqueue(context.Background(), "x"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisQueueListen(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	q := NewRedisQueue(rdb, "complete-update")

	mock.ExpectBRPop(redisPollTimeout, "usatag:queue:complete-update").SetVal([]string{"usatag:queue:complete-update", "payload-1"})

	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	err := q.Listen(ctx, func(payload string) {
		got = append(got, payload)
		cancel()
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"payload-1"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQSQueueName(t *testing.T) {
	q := NewSQSQueue(nil, "complete-update")
	assert.Equal(t, "sqs", q.Name())
}

func TestCreateQueue(t *testing.T) {
	t.Setenv("QUEUE_DRIVER", "local")
	q, err := CreateQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", q.Name())

	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)
	defer lib.NewRedisClient(nil)
	mock.ExpectPing().SetVal("PONG")
	t.Setenv("QUEUE_DRIVER", "redis")
	q, err = CreateQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "redis", q.Name())
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Setenv("QUEUE_DRIVER", "kafka")
	_, err = CreateQueue(context.Background())
	assert.Error(t, err)

	defer NewQueue(nil)
	mq := &memoryQueue{}
	NewQueue(mq)
	got, err := GetQueue(context.Background())
	require.NoError(t, err)
	assert.Same(t, mq, got)
}
