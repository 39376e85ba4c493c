package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu      sync.Mutex
	batches [][]ActionEvent
	err     error
}

func (s *memorySink) WriteBatch(_ context.Context, events []ActionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]ActionEvent(nil), events...))
	return s.err
}

func (s *memorySink) events() []ActionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ActionEvent
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}

type gaugeStub struct {
	mu   sync.Mutex
	last float64
}

func (g *gaugeStub) Set(v float64) {
	g.mu.Lock()
	g.last = v
	g.mu.Unlock()
}

func TestJournalDrainsOnStop(t *testing.T) {
	sink := &memorySink{}
	gauge := &gaugeStub{}
	j := NewJournal(sink, JournalOptions{BatchSize: 3, FlushInterval: time.Hour, Gauge: gauge}, zap.NewNop())
	j.Start()

	for i := 0; i < 7; i++ {
		j.Log(ActionEvent{ViewID: "v1", Action: "settings.save", Status: StatusSuccess})
	}
	j.Stop()

	events := sink.events()
	require.Len(t, events, 7)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
	}
	// 3 + 3 по размеру, остаток финальным flush
	assert.Len(t, sink.batches, 3)
	assert.Equal(t, 0.0, gauge.last)
}

func TestJournalFlushesByTimer(t *testing.T) {
	sink := &memorySink{}
	j := NewJournal(sink, JournalOptions{FlushInterval: 5 * time.Millisecond}, zap.NewNop())
	j.Start()
	defer j.Stop()

	j.Log(ActionEvent{Action: "agent.toggle"})
	assert.Eventually(t, func() bool { return len(sink.events()) == 1 }, time.Second, time.Millisecond)
}

func TestJournalDropsAfterStop(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &memorySink{}
	j := NewJournal(sink, JournalOptions{}, zap.New(core))
	j.Start()
	j.Stop()
	j.Stop()

	j.Log(ActionEvent{ID: "late"})
	assert.Empty(t, sink.events())
	assert.Equal(t, 1, logs.FilterMessage("journal event dropped: journal is stopping").Len())
}

func TestJournalSinkErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &memorySink{err: errors.New("disk full")}
	j := NewJournal(sink, JournalOptions{}, zap.New(core))
	j.Start()
	j.Log(ActionEvent{Action: "signup.submit"})
	j.Stop()

	assert.Equal(t, 1, logs.FilterMessage("journal flush failed").Len())
}

func TestLogSinkWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogSink(zap.New(core))

	err := s.WriteBatch(context.Background(), []ActionEvent{{
		ID:      "e1",
		ViewID:  "v1",
		Action:  "signup.submit",
		Status:  StatusSuccess,
		Payload: map[string]any{"telegram_token": "••••••abcd"},
	}})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "signup.submit", fields["action"])
	assert.Equal(t, "v1", fields["view_id"])
	assert.Equal(t, "journal", entries[0].LoggerName)
}
