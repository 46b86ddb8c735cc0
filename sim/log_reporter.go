package sim

import (
	"github.com/sirupsen/logrus"
)

const (
	// NarrationTimeLayout is the wall-clock format of console narration lines.
	NarrationTimeLayout = "15:04:05"
	// StoreBrand is the store name used in the closing greeting.
	StoreBrand = "Doodle Supermarket"
)

// LogReporter narrates the store to a logrus logger, one line per
// observation in the form "HH:MM:SS, Customer <id>, <aisle>".
type LogReporter struct {
	Logger logrus.FieldLogger
}

// NarrationFormatter is a logrus formatter that writes only the message,
// without level or fields, so narration lines keep their plain form.
type NarrationFormatter struct{}

func (NarrationFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

// NewLogReporter creates a LogReporter. A nil logger uses the standard logger.
func NewLogReporter(logger logrus.FieldLogger) *LogReporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) Observe(obs Observation) {
	r.Logger.WithField("kind", obs.Kind).Infof("%s, Customer %d, %s",
		obs.Time.Format(NarrationTimeLayout), obs.CustomerID, obs.Location)
}

func (r *LogReporter) TickEnd(snap TickSnapshot) {
	r.Logger.Debugf("[tick %07d] %d arrivals, %d customers so far", snap.Tick, snap.Admitted, snap.TotalCustomers)
}

func (r *LogReporter) Announce(at Stamp, message string) {
	r.Logger.Info(message)
}

func (r *LogReporter) Closed(summary ClosingSummary) {
	r.Logger.WithField("day", summary.Store).Infof("%s: To the %d customers that visited us today - Thank you for shopping at %s",
		summary.Time.Format(NarrationTimeLayout), summary.TotalCustomers, StoreBrand)
}
