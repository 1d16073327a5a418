// Package feed is the peripheral glue spec.md §1 calls out of scope for
// the core: line tokenisation and output formatting. It contains no
// pricing logic of its own — it only translates between the wire protocol
// in §6 and the dispatcher.Event / pricer.Report types the core operates
// on.
package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lightsgoout/depthpricer/internal/book"
	"github.com/lightsgoout/depthpricer/internal/dispatcher"
	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

var errSizeNotPositive = errors.New("size must be a positive integer")

// MalformedInputError reports an unparsable input line together with its
// 1-based line number, per the MalformedInput fault kind in §7.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
}

// Decode parses one non-empty input line into a dispatcher.Event at the
// given decimal precision. lineNo is used only to annotate errors.
func Decode(line string, lineNo int, precision uint) (dispatcher.Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "expected at least timestamp and action"}
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "bad timestamp"}
	}

	switch fields[1] {
	case "A":
		return decodeAdd(fields, lineNo, ts, precision)
	case "R":
		return decodeReduce(fields, lineNo, ts)
	default:
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "unknown action token " + fields[1]}
	}
}

func decodeAdd(fields []string, lineNo int, ts int64, precision uint) (dispatcher.Event, error) {
	if len(fields) != 6 {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "add record needs 6 fields"}
	}

	orderRaw := fields[2]
	if orderRaw == "" {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "empty order id"}
	}

	side, ok := book.ParseSide(fields[3])
	if !ok {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "bad side token " + fields[3]}
	}

	price, err := fixedpoint.Parse(fields[4], precision)
	if err != nil {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "bad price: " + err.Error()}
	}

	size, err := parseSize(fields[5])
	if err != nil {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "bad size: " + err.Error()}
	}

	return dispatcher.Event{
		Timestamp: ts,
		Kind:      dispatcher.KindAdd,
		OrderRaw:  orderRaw,
		Side:      side,
		Price:     price,
		Size:      size,
	}, nil
}

func decodeReduce(fields []string, lineNo int, ts int64) (dispatcher.Event, error) {
	if len(fields) != 4 {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "reduce record needs 4 fields"}
	}

	orderRaw := fields[2]
	if orderRaw == "" {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "empty order id"}
	}

	size, err := parseSize(fields[3])
	if err != nil {
		return dispatcher.Event{}, &MalformedInputError{Line: lineNo, Reason: "bad size: " + err.Error()}
	}

	return dispatcher.Event{
		Timestamp: ts,
		Kind:      dispatcher.KindReduce,
		OrderRaw:  orderRaw,
		Size:      size,
	}, nil
}

func parseSize(tok string) (fixedpoint.Size, error) {
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errSizeNotPositive
	}
	return fixedpoint.Size(n), nil
}
