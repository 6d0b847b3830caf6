package driver

// This file contains the binary encoding of traces, so that a completed
// parse can be persisted as a single BLOB and decoded back into its
// step-by-step form later. Trace and TraceStep implement
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler, which is the
// contract rezi's EncBinary/DecBinary functions operate on.

import (
	"encoding/binary"
	"fmt"

	"github.com/corvane/slrforge/internal/grammar"
)

// always writes 8 bytes.
func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(i))
	return enc
}

// always reads 8 bytes but does return the count consumed.
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("unexpected end of data")
	}
	return int(int64(binary.BigEndian.Uint64(data[:8]))), 8, nil
}

func encBinaryString(s string) []byte {
	enc := encBinaryInt(len(s))
	return append(enc, []byte(s)...)
}

// returns the string followed by bytes consumed.
func decBinaryString(data []byte) (string, int, error) {
	byteLen, n, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string byte count: %w", err)
	}
	data = data[n:]

	if byteLen < 0 {
		return "", 0, fmt.Errorf("string byte count < 0")
	}
	if len(data) < byteLen {
		return "", 0, fmt.Errorf("unexpected end of data in string")
	}

	return string(data[:byteLen]), n + byteLen, nil
}

func encBinarySymbols(syms []grammar.Symbol) []byte {
	enc := encBinaryInt(len(syms))
	for _, sym := range syms {
		enc = append(enc, encBinaryString(sym)...)
	}
	return enc
}

func decBinarySymbols(data []byte) ([]grammar.Symbol, int, error) {
	count, readBytes, err := decBinaryInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding symbol count: %w", err)
	}
	data = data[readBytes:]

	if count < 0 {
		return nil, 0, fmt.Errorf("symbol count < 0")
	}

	syms := make([]grammar.Symbol, count)
	for i := 0; i < count; i++ {
		var n int
		syms[i], n, err = decBinaryString(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding symbol %d: %w", i, err)
		}
		data = data[n:]
		readBytes += n
	}

	return syms, readBytes, nil
}

// MarshalBinary always returns a nil error.
func (step TraceStep) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryInt(step.Step)...)
	data = append(data, encBinaryString(step.Action)...)

	data = append(data, encBinaryInt(len(step.StateStack))...)
	for _, s := range step.StateStack {
		data = append(data, encBinaryInt(s)...)
	}

	data = append(data, encBinarySymbols(step.SymbolStack)...)
	data = append(data, encBinarySymbols(step.Buffer)...)

	return data, nil
}

func (step *TraceStep) UnmarshalBinary(data []byte) error {
	var err error
	var bytesRead int

	step.Step, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[bytesRead:]

	step.Action, bytesRead, err = decBinaryString(data)
	if err != nil {
		return err
	}
	data = data[bytesRead:]

	stateCount, bytesRead, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[bytesRead:]
	if stateCount < 0 {
		return fmt.Errorf("state stack count < 0")
	}
	step.StateStack = make([]int, stateCount)
	for i := 0; i < stateCount; i++ {
		step.StateStack[i], bytesRead, err = decBinaryInt(data)
		if err != nil {
			return err
		}
		data = data[bytesRead:]
	}

	step.SymbolStack, bytesRead, err = decBinarySymbols(data)
	if err != nil {
		return err
	}
	data = data[bytesRead:]

	step.Buffer, _, err = decBinarySymbols(data)
	if err != nil {
		return err
	}

	return nil
}

// MarshalBinary always returns a nil error.
func (t Trace) MarshalBinary() ([]byte, error) {
	data := encBinaryInt(len(t))
	for _, step := range t {
		stepData, _ := step.MarshalBinary()
		data = append(data, encBinaryInt(len(stepData))...)
		data = append(data, stepData...)
	}
	return data, nil
}

func (t *Trace) UnmarshalBinary(data []byte) error {
	count, bytesRead, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[bytesRead:]
	if count < 0 {
		return fmt.Errorf("trace step count < 0")
	}

	steps := make(Trace, count)
	for i := 0; i < count; i++ {
		var stepLen int
		stepLen, bytesRead, err = decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding step %d length: %w", i, err)
		}
		data = data[bytesRead:]
		if stepLen < 0 || len(data) < stepLen {
			return fmt.Errorf("unexpected end of data in step %d", i)
		}

		if err := steps[i].UnmarshalBinary(data[:stepLen]); err != nil {
			return fmt.Errorf("decoding step %d: %w", i, err)
		}
		data = data[stepLen:]
	}

	*t = steps
	return nil
}
