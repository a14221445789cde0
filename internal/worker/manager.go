package worker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"openway/internal/queue"
)

const (
	DefaultWorkerCount  = 2
	DefaultBatchSize    = 10
	DefaultBlockTimeout = 5 * time.Second

	readBackoff = time.Second
)

// EventHandler processes one event. Errors are logged and the message is
// still acknowledged.
type EventHandler interface {
	HandleEvent(ctx context.Context, event queue.SentimentEvent) error
}

// Manager runs worker goroutines that consume the sentiment stream.
type Manager struct {
	consumer    queue.Consumer
	handler     EventHandler
	log         *zap.Logger
	workerCount int
	batchSize   int64
	blockTime   time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// ManagerConfig holds configuration for the worker manager.
type ManagerConfig struct {
	WorkerCount  int
	BatchSize    int64
	BlockTimeout time.Duration // XREADGROUP block time
}

func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		WorkerCount:  DefaultWorkerCount,
		BatchSize:    DefaultBatchSize,
		BlockTimeout: DefaultBlockTimeout,
	}
}

func NewManager(consumer queue.Consumer, handler EventHandler, cfg ManagerConfig, log *zap.Logger) *Manager {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = DefaultBlockTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Manager{
		consumer:    consumer,
		handler:     handler,
		log:         log.Named("worker"),
		workerCount: cfg.WorkerCount,
		batchSize:   cfg.BatchSize,
		blockTime:   cfg.BlockTimeout,
	}
}

// Start ensures the consumer group exists and launches the workers. Stop
// must be called to release them.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	if err := m.consumer.EnsureGroup(m.ctx, queue.StreamSentiment, queue.ConsumerGroupSentiment); err != nil {
		m.cancel()
		return err
	}

	for i := 1; i <= m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(i, consumerNameForWorker(i))
	}

	m.log.Info("workers started",
		zap.Int("count", m.workerCount),
		zap.String("stream", queue.StreamSentiment),
		zap.String("group", queue.ConsumerGroupSentiment),
	)
	return nil
}

// Stop cancels the workers and waits for them to exit.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
	m.log.Info("workers stopped")
}

func (m *Manager) runWorker(workerID int, consumerName string) {
	defer m.wg.Done()
	log := m.log.With(zap.Int("worker", workerID))

	// Replay anything left unacknowledged by a previous run first.
	m.processPending(log, consumerName)

	for m.ctx.Err() == nil {
		m.processMessages(log, consumerName)
	}
	log.Debug("shutting down")
}

func (m *Manager) processPending(log *zap.Logger, consumerName string) {
	for m.ctx.Err() == nil {
		messages, err := m.consumer.ReadPending(m.ctx, queue.StreamSentiment, queue.ConsumerGroupSentiment, consumerName, m.batchSize)
		if err != nil {
			log.Warn("read pending failed", zap.Error(err))
			return
		}
		if len(messages) == 0 {
			return
		}
		log.Info("replaying pending messages", zap.Int("count", len(messages)))
		m.handleMessages(log, messages)
	}
}

func (m *Manager) processMessages(log *zap.Logger, consumerName string) {
	messages, err := m.consumer.Read(
		m.ctx,
		queue.StreamSentiment,
		queue.ConsumerGroupSentiment,
		consumerName,
		m.batchSize,
		m.blockTime,
	)
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Warn("read failed", zap.Error(err))
		select {
		case <-m.ctx.Done():
		case <-time.After(readBackoff):
		}
		return
	}

	m.handleMessages(log, messages)
}

func (m *Manager) handleMessages(log *zap.Logger, messages []queue.Message) {
	for _, msg := range messages {
		if msg.Err == nil {
			event := msg.Event
			event.MessageID = msg.ID
			if err := m.handler.HandleEvent(m.ctx, event); err != nil {
				log.Error("handler failed", zap.String("msg_id", msg.ID), zap.String("type", msg.Event.Type), zap.Error(err))
			}
		}

		if err := m.consumer.Ack(m.ctx, queue.StreamSentiment, queue.ConsumerGroupSentiment, msg.ID); err != nil {
			log.Warn("ack failed", zap.String("msg_id", msg.ID), zap.Error(err))
		}
	}
}

func consumerNameForWorker(workerID int) string {
	return "worker-" + strconv.Itoa(workerID)
}
