package pickle

import (
	"reflect"
	"strconv"
	"time"
)

// encodeDateTimeAndMemo emits datetime.datetime(Y, M, D, h, m, s, µs)
// as a GLOBAL constructor call, per spec §4.3. Each field goes through
// the ordinary saver, so the narrowest integer opcode is chosen for
// it just as if it had been saved standalone.
func (s *Session) encodeDateTimeAndMemo(rv reflect.Value, key memoKey, hashable bool) error {
	t := rv.Interface().(time.Time)
	if err := s.writeGlobal("datetime", "datetime"); err != nil {
		return err
	}
	if err := s.e.op(opMark); err != nil {
		return err
	}
	fields := [7]int64{
		int64(t.Year()), int64(t.Month()), int64(t.Day()),
		int64(t.Hour()), int64(t.Minute()), int64(t.Second()),
		int64(t.Nanosecond() / 1000), // microseconds
	}
	for _, f := range fields {
		if err := s.save(reflect.ValueOf(f)); err != nil {
			return err
		}
	}
	if err := s.e.op(opTuple); err != nil {
		return err
	}
	if err := s.e.op(opReduce); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

// encodeTimeDeltaAndMemo emits datetime.timedelta(days, seconds,
// microseconds), normalizing a Go time.Duration's signed nanosecond
// count into CPython's canonical form: seconds and microseconds are
// always non-negative, with the sign folded into days. TUPLE3
// consumes exactly three stack items, so no MARK precedes the fields
// (spec §4.3).
func (s *Session) encodeTimeDeltaAndMemo(rv reflect.Value, key memoKey, hashable bool) error {
	d := time.Duration(rv.Int())

	totalSeconds := int64(d / time.Second)
	micros := int64(d%time.Second) / int64(time.Microsecond)
	if micros < 0 {
		micros += 1_000_000
		totalSeconds--
	}
	const secondsPerDay = 86400
	days := totalSeconds / secondsPerDay
	seconds := totalSeconds % secondsPerDay
	if seconds < 0 {
		seconds += secondsPerDay
		days--
	}

	if err := s.writeGlobal("datetime", "timedelta"); err != nil {
		return err
	}
	for _, f := range [3]int64{days, seconds, micros} {
		if err := s.save(reflect.ValueOf(f)); err != nil {
			return err
		}
	}
	if err := s.e.op(opTuple3); err != nil {
		return err
	}
	if err := s.e.op(opReduce); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

// encodeDecimalAndMemo emits decimal.Decimal("<invariant string>") via
// decimal.Decimal, TUPLE1, REDUCE (spec §4.3).
func (s *Session) encodeDecimalAndMemo(rv reflect.Value, key memoKey, hashable bool) error {
	d := rv.Interface().(Decimal)
	if err := s.writeGlobal("decimal", "Decimal"); err != nil {
		return err
	}
	if err := s.save(reflect.ValueOf(d.String())); err != nil {
		return err
	}
	if err := s.closeArgTuple(1); err != nil {
		return err
	}
	if err := s.e.op(opReduce); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

// structuralString derives the memo identity for the two
// boxed-by-value temporal categories: two DateTime or TimeDelta
// values with the same textual form share a memo slot, matching the
// treatment Decimal and String already get.
func structuralString(rv reflect.Value) string {
	switch v := rv.Interface().(type) {
	case time.Time:
		return v.Format("2006-01-02T15:04:05.000000")
	case time.Duration:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}
