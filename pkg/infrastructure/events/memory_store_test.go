package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

type recordingHandler struct {
	types []string
	seen  []Event
	err   error
}

func (h *recordingHandler) Handle(event Event) error {
	h.seen = append(h.seen, event)
	return h.err
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	for _, t := range h.types {
		if t == eventType {
			return true
		}
	}
	return false
}

func TestMemoryStore_StreamVersions(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Append("s1", New(ModelSelectedEvent, "s1", ModelSelected{ModelID: "dp"})))
	require.NoError(t, store.Append("s1", New(OptionSelectedEvent, "s1", OptionSelected{Category: entities.CategoryHousing, Code: "A"})))
	require.NoError(t, store.Append("s2", New(ModelSelectedEvent, "s2", ModelSelected{ModelID: "gp"})))

	s1, err := store.Stream("s1", 0)
	require.NoError(t, err)
	require.Len(t, s1, 2)
	assert.Equal(t, 1, s1[0].Version())
	assert.Equal(t, 2, s1[1].Version())
	assert.Equal(t, OptionSelectedEvent, s1[1].Type())

	fromTwo, err := store.Stream("s1", 2)
	require.NoError(t, err)
	require.Len(t, fromTwo, 1)

	past, err := store.Stream("s1", 5)
	require.NoError(t, err)
	assert.Empty(t, past)

	unknown, err := store.Stream("nope", 1)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	all, err := store.All(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s2", all[2].SessionID())

	tail, err := store.All(2)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestMemoryStore_RejectsEmptySession(t *testing.T) {
	store := NewMemoryStore()
	err := store.Append("", New(ModelSelectedEvent, "", nil))
	require.Error(t, err)
}

func TestMemoryStore_SubscribersAreCalledSynchronously(t *testing.T) {
	store := NewMemoryStore()
	handler := &recordingHandler{types: []string{RangeCalibratedEvent}}
	require.NoError(t, store.Subscribe([]string{RangeCalibratedEvent, ModelSelectedEvent}, handler))

	require.NoError(t, store.Append("s1", New(RangeCalibratedEvent, "s1", RangeCalibrated{})))
	require.Len(t, handler.seen, 1, "handler must have run before Append returned")

	require.NoError(t, store.Append("s1", New(ModelSelectedEvent, "s1", ModelSelected{})))
	assert.Len(t, handler.seen, 1, "CanHandle filters event types")

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.Append("s1", New(RangeCalibratedEvent, "s1", RangeCalibrated{})))
	assert.Len(t, handler.seen, 1)
}

func TestMemoryStore_HandlerErrorsAreReturned(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")
	require.NoError(t, store.Subscribe([]string{CodeDecodedEvent}, &recordingHandler{types: []string{CodeDecodedEvent}, err: boom}))

	err := store.Append("s1", New(CodeDecodedEvent, "s1", CodeDecoded{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	stored, _ := store.Stream("s1", 1)
	assert.Len(t, stored, 1, "the event is stored even when a handler fails")
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append("s1", New(OptionClearedEvent, "s1", OptionCleared{}))
		}()
	}
	wg.Wait()

	events, err := store.Stream("s1", 1)
	require.NoError(t, err)
	require.Len(t, events, 20)
	for i, e := range events {
		assert.Equal(t, i+1, e.Version())
	}
}

func TestMemoryStore_SubscribeRejectsNilHandler(t *testing.T) {
	assert.Error(t, NewMemoryStore().Subscribe([]string{ModelSelectedEvent}, nil))
}

func TestAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	store := NewMemoryStore()
	audit := NewAuditLogger(zap.New(core))
	require.NoError(t, store.Subscribe(ConfigurationEvents, audit))

	require.NoError(t, store.Append("s1", New(ModelSelectedEvent, "s1", ModelSelected{ModelID: "dp"})))
	require.NoError(t, store.Append("s1", New(SpecialRequestEvent, "s1", SpecialRequestUpdated{Text: "tag"})))

	entries := logs.FilterMessage("session event").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "s1", fields["session"])
	assert.Equal(t, SpecialRequestEvent, fields["type"])
	assert.Equal(t, int64(2), fields["version"])

	require.NoError(t, store.Unsubscribe(audit))
	require.NoError(t, store.Append("s1", New(ModelSelectedEvent, "s1", ModelSelected{})))
	assert.Equal(t, 2, logs.Len())
}
