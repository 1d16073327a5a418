package feed

import (
	"strconv"

	"github.com/lightsgoout/depthpricer/internal/pricer"
)

// FormatReport renders a pricer.Report as an output line per §6:
// "<timestamp> <action> <value>", with <value> the literal "NA" on a
// withdrawal. ok is false when the report carries nothing to emit.
func FormatReport(timestamp int64, report pricer.Report, precision uint) (line string, ok bool) {
	if !report.Emit {
		return "", false
	}

	action := byte('B')
	if report.Side.WireByte() == 'S' {
		action = 'S'
	}

	value := "NA"
	if !report.Withdrawal {
		value = report.Value.Format(precision)
	}

	return strconv.FormatInt(timestamp, 10) + " " + string(action) + " " + value, true
}
