// Package ops defines the eleven primitive stack operations and the text
// format of an operation log (one lowercase operation name per line).
package ops

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Op is a primitive operation on the stack pair.
type Op uint8

const (
	PA  Op = iota // move front of B to front of A
	PB            // move front of A to front of B
	SA            // swap the two front elements of A
	SB            // swap the two front elements of B
	SS            // SA and SB
	RA            // rotate A: front goes to the back
	RB            // rotate B: front goes to the back
	RR            // RA and RB
	RRA           // reverse rotate A: back goes to the front
	RRB           // reverse rotate B: back goes to the front
	RRR           // RRA and RRB
)

// All lists every operation in declaration order.
var All = []Op{PA, PB, SA, SB, SS, RA, RB, RR, RRA, RRB, RRR}

var names = [...]string{
	PA:  "pa",
	PB:  "pb",
	SA:  "sa",
	SB:  "sb",
	SS:  "ss",
	RA:  "ra",
	RB:  "rb",
	RR:  "rr",
	RRA: "rra",
	RRB: "rrb",
	RRR: "rrr",
}

var byName = func() map[string]Op {
	m := make(map[string]Op, len(names))
	for i, n := range names {
		m[n] = Op(i)
	}
	return m
}()

// ErrUnknownOp is returned when parsing a token that names no operation.
var ErrUnknownOp = errors.New("unknown operation")

// String returns the lowercase operation name.
func (o Op) String() string {
	if int(o) < len(names) {
		return names[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Valid reports whether o is one of the eleven operations.
func (o Op) Valid() bool { return int(o) < len(names) }

// Parse returns the operation named s.
func Parse(s string) (Op, error) {
	if op, ok := byName[s]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOp, uint8(o))
	}
	return []byte(names[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	op, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Touches reports which stacks o can modify.
func (o Op) Touches() (a, b bool) {
	switch o {
	case PA, PB, SS, RR, RRR:
		return true, true
	case SA, RA, RRA:
		return true, false
	case SB, RB, RRB:
		return false, true
	}
	return false, false
}

// Inverse returns the operation that undoes o. The result is only an exact
// undo when o actually changed the pair.
func (o Op) Inverse() Op {
	switch o {
	case PA:
		return PB
	case PB:
		return PA
	case RA:
		return RRA
	case RB:
		return RRB
	case RR:
		return RRR
	case RRA:
		return RA
	case RRB:
		return RB
	case RRR:
		return RR
	}
	return o
}

// Write renders log as one operation name per line.
func Write(w io.Writer, log []Op) error {
	bw := bufio.NewWriter(w)
	for _, op := range log {
		if _, err := bw.WriteString(op.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses one operation per line. Blank lines are skipped; surrounding
// whitespace is ignored.
func Read(r io.Reader) ([]Op, error) {
	var log []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		op, err := Parse(tok)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		log = append(log, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}
	return log, nil
}

// Format joins the operation names with sep.
func Format(log []Op, sep string) string {
	parts := make([]string, len(log))
	for i, op := range log {
		parts[i] = op.String()
	}
	return strings.Join(parts, sep)
}
