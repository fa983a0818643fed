package recordprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/records"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/rules"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements a minimal logger for testing
type mockLogger struct{}

func (l *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Close() error                                   { return nil }

type sliceSource struct {
	records []domain.Record
	pos     int
	err     error // returned instead of io.EOF when set
}

func (s *sliceSource) Next() (domain.Record, error) {
	if s.pos >= len(s.records) {
		if s.err != nil {
			return domain.Record{}, s.err
		}
		return domain.Record{}, io.EOF
	}
	s.pos++
	return s.records[s.pos-1], nil
}

type sliceSink struct {
	records []domain.Record
	flushed bool
	failAt  int // fail the Nth write (1-based) when > 0
}

func (s *sliceSink) Write(rec domain.Record) error {
	if s.failAt > 0 && len(s.records)+1 == s.failAt {
		return errors.New("disk full")
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *sliceSink) Flush() error {
	s.flushed = true
	return nil
}

var messages = []string{
	"Free entry in 2 a wkly comp to win FA Cup final tkts 21st May 2005.",
	"Ok lar... Joking wif u oni...",
	"WINNER!! To claim call 09061701461. Claim code KL341.",
	"I'm gonna be home soon :-)",
	"Cost 150p/day, 6days, 16+ TsandCs apply",
}

func makeRecords(n int) []domain.Record {
	recs := make([]domain.Record, n)
	for i := range recs {
		recs[i] = domain.Record{
			Label: fmt.Sprintf("label-%d", i),
			Text:  messages[i%len(messages)],
			Line:  i + 1,
		}
	}
	return recs
}

func newTestNormalizer() ports.Normalizer {
	return normalizer.NewNormalizerFactory(rules.Default()).CreateNormalizer(normalizer.GuardedNormalizerType)
}

func TestProcessSequential(t *testing.T) {
	p := NewProcessor(&mockLogger{}, newTestNormalizer(), ProcessingConfig{})
	sink := &sliceSink{}

	stats, err := p.Process(context.Background(), &sliceSource{records: makeRecords(5)}, sink)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Records)
	assert.Equal(t, 3, stats.Rewritten)
	assert.True(t, sink.flushed)
	require.Len(t, sink.records, 5)
	assert.Equal(t, "label-3", sink.records[3].Label)
	assert.Equal(t, "I m gonna be home soon emoji_expression", sink.records[3].Text)
	assert.Equal(t, "Ok lar... Joking wif u oni...", sink.records[1].Text)
}

func TestProcessParallelMatchesSequential(t *testing.T) {
	recs := makeRecords(1037)
	norm := newTestNormalizer()

	seqSink := &sliceSink{}
	seq := NewProcessor(&mockLogger{}, norm, ProcessingConfig{})
	seqStats, err := seq.Process(context.Background(), &sliceSource{records: recs}, seqSink)
	require.NoError(t, err)

	parSink := &sliceSink{}
	par := NewProcessor(&mockLogger{}, norm, ProcessingConfig{BatchSize: 7, Workers: 4, UseParallel: true})
	parStats, err := par.Process(context.Background(), &sliceSource{records: recs}, parSink)
	require.NoError(t, err)

	assert.Equal(t, seqSink.records, parSink.records)
	assert.Equal(t, seqStats.Records, parStats.Records)
	assert.Equal(t, seqStats.Rewritten, parStats.Rewritten)
	assert.True(t, parSink.flushed)
}

func TestProcessSourceError(t *testing.T) {
	input := "ham\tok\nbroken row\nham\tlater\n"
	for _, parallel := range []bool{false, true} {
		p := NewProcessor(&mockLogger{}, newTestNormalizer(), ProcessingConfig{Workers: 2, UseParallel: parallel})
		loader := records.NewTSVLoader(strings.NewReader(input))
		sink := &sliceSink{}

		_, err := p.Process(context.Background(), loader, sink)
		assert.ErrorIs(t, err, domain.ErrMalformedRow, "parallel=%v", parallel)
		assert.False(t, sink.flushed)
		require.NoError(t, loader.Close())
	}
}

func TestProcessSinkError(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		p := NewProcessor(&mockLogger{}, newTestNormalizer(), ProcessingConfig{BatchSize: 3, Workers: 3, UseParallel: parallel})
		sink := &sliceSink{failAt: 10}

		_, err := p.Process(context.Background(), &sliceSource{records: makeRecords(200)}, sink)
		require.Error(t, err, "parallel=%v", parallel)
		assert.Contains(t, err.Error(), "disk full")
		assert.Contains(t, err.Error(), "line 10")
		assert.Len(t, sink.records, 9)
	}
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		p := NewProcessor(&mockLogger{}, newTestNormalizer(), ProcessingConfig{Workers: 2, UseParallel: parallel})
		_, err := p.Process(ctx, &sliceSource{records: makeRecords(10)}, &sliceSink{})
		assert.ErrorIs(t, err, context.Canceled, "parallel=%v", parallel)
	}
}

func TestProcessCountsSkippedLines(t *testing.T) {
	p := NewProcessor(&mockLogger{}, newTestNormalizer(), ProcessingConfig{})
	loader := records.NewTSVLoader(strings.NewReader("ham\ta\n\n\nspam\tb\n"))
	defer loader.Close()

	stats, err := p.Process(context.Background(), loader, &sliceSink{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 0, stats.Rewritten)
}
