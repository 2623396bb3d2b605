package pickle

import "io"

// emitter is a thin adapter over an output sink. It carries no
// encoding policy of its own: it only knows how to write bytes.
type emitter struct {
	w io.Writer
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{w: w}
}

// op writes a single opcode byte.
func (e *emitter) op(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

// raw writes a byte slice verbatim, with no length prefix or framing.
func (e *emitter) raw(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// ops writes a composite sequence of one-byte opcodes in order.
func (e *emitter) ops(bs ...byte) error {
	_, err := e.w.Write(bs)
	return err
}

// opRaw writes an opcode followed immediately by a raw payload, the
// shape every fixed-width argument opcode in this package takes.
func (e *emitter) opRaw(op byte, payload []byte) error {
	if err := e.op(op); err != nil {
		return err
	}
	return e.raw(payload)
}
