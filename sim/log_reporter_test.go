package sim

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReporter_Observe_NarratesCustomer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewLogReporter(logger)

	r.Observe(Observation{Stamp: Stamp{Time: fixedNow}, CustomerID: 3, Location: Dairy, Kind: KindPosition})

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "09:30:00, Customer 3, dairy", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, KindPosition, entry.Data["kind"])
}

func TestLogReporter_Closed_ThanksVisitors(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewLogReporter(logger)

	r.Announce(Stamp{}, ClosingAnnouncement)
	r.Closed(ClosingSummary{Stamp: Stamp{Time: fixedNow}, Store: "friday", TotalCustomers: 12})

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, ClosingAnnouncement, hook.Entries[0].Message)
	assert.Equal(t, "09:30:00: To the 12 customers that visited us today - Thank you for shopping at Doodle Supermarket",
		hook.Entries[1].Message)
	assert.Equal(t, "friday", hook.Entries[1].Data["day"])
}

func TestLogReporter_TickEnd_DebugOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	r := NewLogReporter(logger)

	r.TickEnd(TickSnapshot{Admitted: 2, TotalCustomers: 2})

	assert.Empty(t, hook.Entries)
}

func TestNewLogReporter_NilUsesStandardLogger(t *testing.T) {
	r := NewLogReporter(nil)
	assert.Equal(t, logrus.StandardLogger(), r.Logger)
}

func TestLogReporter_NarrationFormatter_PlainLines(t *testing.T) {
	// GIVEN a logger using the narration formatter
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(NarrationFormatter{})
	r := NewLogReporter(logger.WithField("day", "friday"))

	// WHEN a position and the closing are narrated
	r.Observe(Observation{Stamp: Stamp{Time: fixedNow}, CustomerID: 1, Location: Dairy, Kind: KindPosition})
	r.Announce(Stamp{}, ClosingAnnouncement)

	// THEN only the messages are written, without level or fields
	assert.Equal(t, "09:30:00, Customer 1, dairy\n"+ClosingAnnouncement+"\n", buf.String())
}
