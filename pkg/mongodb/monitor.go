package mongodb

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"

	"github.com/commerce-platform/distribution-service/pkg/logging"
	"github.com/commerce-platform/distribution-service/pkg/metrics"
)

// Commands worth recording. Session and handshake chatter is skipped.
var monitoredCommands = map[string]bool{
	"find":          true,
	"insert":        true,
	"update":        true,
	"delete":        true,
	"aggregate":     true,
	"count":         true,
	"distinct":      true,
	"findAndModify": true,
	"createIndexes": true,
}

type commandInfo struct {
	collection string
	startedAt  time.Time
}

type commandMonitor struct {
	metrics *metrics.Metrics
	logger  *logging.Logger

	mu       sync.Mutex
	inFlight map[int64]commandInfo
}

// NewCommandMonitor returns a driver CommandMonitor that records operation
// counts, durations, and query logs for data commands
func NewCommandMonitor(m *metrics.Metrics, logger *logging.Logger) *event.CommandMonitor {
	cm := &commandMonitor{
		metrics:  m,
		logger:   logger,
		inFlight: make(map[int64]commandInfo),
	}

	return &event.CommandMonitor{
		Started:   cm.commandStarted,
		Succeeded: cm.commandSucceeded,
		Failed:    cm.commandFailed,
	}
}

func (cm *commandMonitor) commandStarted(_ context.Context, evt *event.CommandStartedEvent) {
	if !monitoredCommands[evt.CommandName] {
		return
	}

	collection := ""
	if value, err := evt.Command.LookupErr(evt.CommandName); err == nil {
		collection, _ = value.StringValueOK()
	}

	cm.mu.Lock()
	cm.inFlight[evt.RequestID] = commandInfo{collection: collection, startedAt: time.Now()}
	cm.mu.Unlock()
}

func (cm *commandMonitor) commandSucceeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	cm.record(ctx, evt.RequestID, evt.CommandName, true)
}

func (cm *commandMonitor) commandFailed(ctx context.Context, evt *event.CommandFailedEvent) {
	cm.record(ctx, evt.RequestID, evt.CommandName, false)
}

func (cm *commandMonitor) record(ctx context.Context, requestID int64, commandName string, success bool) {
	cm.mu.Lock()
	info, ok := cm.inFlight[requestID]
	if ok {
		delete(cm.inFlight, requestID)
	}
	cm.mu.Unlock()

	if !ok {
		return
	}

	duration := time.Since(info.startedAt)
	cm.metrics.RecordMongoOperation(info.collection, commandName, success, duration)
	cm.logger.DatabaseQuery(ctx, info.collection, commandName, duration, success)
}
