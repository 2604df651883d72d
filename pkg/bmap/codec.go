package bmap

import (
	"errors"
	"fmt"

	"bolo-mapkit/internal/errtrace"
)

// Codec loads and saves maps. The zero value is ready to use; set Trace to
// record the call path of a failure.
type Codec struct {
	Trace *errtrace.Trace
}

// Load is Codec{}.Load without the repair report.
func Load(data []byte) (*Map, error) {
	m, _, err := Codec{}.Load(data)
	return m, err
}

// Save is Codec{}.Save.
func (m *Map) Save() ([]byte, error) {
	return Codec{}.Save(m)
}

// Load decodes a map file and repairs it. It fails with ErrCorruptFormat
// when the bytes cannot be parsed and ErrIncompatibleVersion when the file
// has a version this package does not read. A stream of runs that stops
// without its terminating run is accepted.
func (c Codec) Load(data []byte) (m *Map, report RepairReport, err error) {
	defer c.Trace.Enter()(&err)

	m = New()
	off, err := c.readHeader(m, data)
	if err != nil {
		return nil, nil, err
	}
	if err := c.readRuns(m, data[off:]); err != nil {
		return nil, nil, err
	}
	return m, m.Repair(), nil
}

func (c Codec) readHeader(m *Map, data []byte) (off int, err error) {
	defer c.Trace.Enter()(&err)

	if len(data) < PreambleSize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than the preamble", ErrCorruptFormat, len(data))
	}

	var p Preamble
	p.unmarshal(data)
	if string(p.Ident[:]) != Magic {
		return 0, fmt.Errorf("%w: bad identifier %q", ErrCorruptFormat, p.Ident[:])
	}
	if p.Version != CurrentVersion {
		return 0, fmt.Errorf("%w: version %d, want %d", ErrIncompatibleVersion, p.Version, CurrentVersion)
	}
	if p.NumPills > MaxPills || p.NumBases > MaxBases || p.NumStarts > MaxStarts {
		return 0, fmt.Errorf("%w: object counts %d/%d/%d exceed %d",
			ErrCorruptFormat, p.NumPills, p.NumBases, p.NumStarts, MaxObjects)
	}
	if len(data) < p.headerSize() {
		return 0, fmt.Errorf("%w: header needs %d bytes, have %d", ErrCorruptFormat, p.headerSize(), len(data))
	}

	off = PreambleSize
	for i := 0; i < int(p.NumPills); i++ {
		var v Pill
		v.unmarshal(data[off:])
		m.Pills.Append(v)
		off += PillSize
	}
	for i := 0; i < int(p.NumBases); i++ {
		var v Base
		v.unmarshal(data[off:])
		m.Bases.Append(v)
		off += BaseSize
	}
	for i := 0; i < int(p.NumStarts); i++ {
		var v Start
		v.unmarshal(data[off:])
		m.Starts.Append(v)
		off += StartSize
	}
	return off, nil
}

func (c Codec) readRuns(m *Map, data []byte) (err error) {
	defer c.Trace.Enter()(&err)

	off := 0
	for off+RunHeaderSize <= len(data) {
		var run Run
		run.unmarshal(data[off:])
		if run.IsEnd() {
			// Bytes after the terminator are ignored.
			return nil
		}
		if run.Len < RunHeaderSize {
			return fmt.Errorf("%w: run at offset %d has length %d", ErrCorruptFormat, off, run.Len)
		}
		if off+int(run.Len) > len(data) {
			return fmt.Errorf("%w: run at offset %d overruns the file by %d bytes",
				ErrCorruptFormat, off, off+int(run.Len)-len(data))
		}
		if err := DecodeRun(run, data[off+RunHeaderSize:off+int(run.Len)], &m.Tiles); err != nil {
			return err
		}
		off += int(run.Len)
	}
	return nil
}

// Save encodes m. The map is written as is; call Repair first if it may
// have been edited into an inconsistent state.
func (c Codec) Save(m *Map) (data []byte, err error) {
	defer c.Trace.Enter()(&err)

	size, err := c.Size(m)
	if err != nil {
		return nil, err
	}

	data = make([]byte, size)
	n, err := c.SaveInto(m, data)
	if errors.Is(err, ErrResourceExhausted) {
		return nil, fmt.Errorf("%w: encoded map outgrew its measured size of %d bytes", ErrEncodingFailure, size)
	}
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: wrote %d bytes, measured %d", ErrEncodingFailure, n, size)
	}
	return data, nil
}

// Size returns the number of bytes Save would produce for m.
func (c Codec) Size(m *Map) (n int, err error) {
	defer c.Trace.Enter()(&err)

	var scratch [MaxRunPayload]byte
	n = m.Preamble().headerSize()
	s := NewRunScanner(&m.Tiles)
	for {
		run, err := s.Next(scratch[:])
		if err != nil {
			return 0, err
		}
		n += int(run.Len)
		if run.IsEnd() {
			return n, nil
		}
	}
}

// SaveInto encodes m into buf and returns the number of bytes written. It
// fails with ErrResourceExhausted if buf is too small.
func (c Codec) SaveInto(m *Map, buf []byte) (n int, err error) {
	defer c.Trace.Enter()(&err)

	p := m.Preamble()
	if len(buf) < p.headerSize() {
		return 0, fmt.Errorf("%w: header needs %d bytes, have %d", ErrResourceExhausted, p.headerSize(), len(buf))
	}

	p.marshal(buf)
	off := PreambleSize
	for i := 0; i < m.Pills.Len(); i++ {
		m.Pills.items[i].marshal(buf[off:])
		off += PillSize
	}
	for i := 0; i < m.Bases.Len(); i++ {
		m.Bases.items[i].marshal(buf[off:])
		off += BaseSize
	}
	for i := 0; i < m.Starts.Len(); i++ {
		m.Starts.items[i].marshal(buf[off:])
		off += StartSize
	}

	var scratch [MaxRunPayload]byte
	s := NewRunScanner(&m.Tiles)
	for {
		run, err := s.Next(scratch[:])
		if err != nil {
			return 0, err
		}
		if off+int(run.Len) > len(buf) {
			return 0, fmt.Errorf("%w: run at row %d needs %d bytes past offset %d, have %d",
				ErrResourceExhausted, run.Y, run.Len, off, len(buf))
		}
		run.marshal(buf[off:])
		copy(buf[off+RunHeaderSize:], scratch[:run.PayloadLen()])
		off += int(run.Len)
		if run.IsEnd() {
			return off, nil
		}
	}
}
