package pickle

import (
	"encoding/binary"
	"math"
)

// Opcodes used by protocol 2. Names and byte values follow the
// reference implementation's pickletools module.
const (
	opMark       byte = '(' // push special markobject on stack
	opStop       byte = '.' // every pickle ends with STOP
	opNone       byte = 'N' // push None
	opReduce     byte = 'R' // apply callable to argtuple, both on stack
	opGlobal     byte = 'c' // push self.find_class(modname, name); 2 string args
	opDict       byte = 'd' // build a dict from stack items
	opEmptyDict  byte = '}' // push empty dict
	opAppends    byte = 'e' // extend list on stack by topmost stack slice
	opBinget     byte = 'h' // push item from memo on stack; index is 1-byte arg
	opLongBinget byte = 'j' // push item from memo on stack; index is 4-byte arg
	opList       byte = 'l'
	opEmptyList  byte = ']' // push empty list
	opBinput     byte = 'q' // store stack top in memo; index is 1-byte arg
	opLongBinput byte = 'r' // store stack top in memo; index is 4-byte arg
	opSetitems   byte = 'u' // modify dict by adding topmost key+value pairs
	opBinfloat   byte = 'G' // push float; arg is 8-byte float encoding
	opEmptyTuple byte = ')' // push empty tuple
	opTuple      byte = 't' // build tuple from topmost stack items

	opProto    byte = '\x80' // identify pickle protocol
	opTuple1   byte = '\x85'
	opTuple2   byte = '\x86'
	opTuple3   byte = '\x87'
	opNewtrue  byte = '\x88'
	opNewfalse byte = '\x89'

	opBinint  byte = 'J' // push four-byte signed int
	opBinint1 byte = 'K' // push 1-byte unsigned int
	opBinint2 byte = 'M' // push 2-byte unsigned int
	opInt     byte = 'I' // push integer; decimal string argument

	opBinunicode     byte = 'X' // push Unicode string; counted UTF-8 string argument
	opShortBinstring byte = 'U' // push string; counted binary string argument < 256 bytes
	opBinpersid      byte = 'Q' // push persistent object; id is taken from stack
)

const (
	protocol2    byte = 2
	recursionCap      = 200
)

// putUint32LE appends v to dst as 4 little-endian bytes.
func putUint32LE(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// putFloat64BE appends f to dst as 8 big-endian IEEE-754 bytes.
func putFloat64BE(dst []byte, f float64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	return append(dst, b[:]...)
}
