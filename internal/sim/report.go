// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Report field numbers.
//
//	Report  { 1: program, 2: runs, 3: trace (Record), 4: attack (Attack) }
//	Record  { 1: addr, 2: count }
//	Attack  { 1: fault (Fault) }
//	Fault   { 1: kind, 2: addr, 3: arg }
const (
	fieldProgram = 1
	fieldRuns    = 2
	fieldTrace   = 3
	fieldAttack  = 4

	fieldRecordAddr  = 1
	fieldRecordCount = 2

	fieldAttackFault = 1

	fieldFaultKind = 1
	fieldFaultAddr = 2
	fieldFaultArg  = 3
)

var errTruncated = errors.New("truncated report")

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func marshalFault(f Fault) (b []byte) {
	b = appendVarint(b, fieldFaultKind, uint64(f.Kind))
	b = appendVarint(b, fieldFaultAddr, uint64(f.Addr))
	b = appendVarint(b, fieldFaultArg, uint64(f.Arg))

	return
}

// Marshal encodes the result in protobuf wire format.
func (r *Result) Marshal() (b []byte) {
	b = protowire.AppendTag(b, fieldProgram, protowire.BytesType)
	b = protowire.AppendString(b, r.Program)
	b = appendVarint(b, fieldRuns, uint64(r.Runs))

	for _, rec := range r.Trace {
		var m []byte
		m = appendVarint(m, fieldRecordAddr, uint64(rec.Addr))
		m = appendVarint(m, fieldRecordCount, uint64(rec.Count))
		b = appendMessage(b, fieldTrace, m)
	}

	for _, a := range r.Attacks {
		var m []byte

		for _, f := range a.Faults {
			m = appendMessage(m, fieldAttackFault, marshalFault(f))
		}

		b = appendMessage(b, fieldAttack, m)
	}

	return
}

// fields walks the top level fields of a message, unknown fields are
// skipped.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, v uint64, msg []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)

		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		var v uint64
		var msg []byte

		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			msg, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		if err := fn(num, typ, v, msg); err != nil {
			return err
		}
	}

	return nil
}

func unmarshalFault(b []byte) (f Fault, err error) {
	err = fields(b, func(num protowire.Number, typ protowire.Type, v uint64, _ []byte) error {
		if typ != protowire.VarintType {
			return nil
		}

		switch num {
		case fieldFaultKind:
			f.Kind = Kind(v)
		case fieldFaultAddr:
			f.Addr = uint32(v)
		case fieldFaultArg:
			f.Arg = uint32(v)
		}

		return nil
	})

	return
}

// UnmarshalResult decodes a result encoded with Marshal.
func UnmarshalResult(b []byte) (*Result, error) {
	r := &Result{}

	if len(b) == 0 {
		return nil, errTruncated
	}

	err := fields(b, func(num protowire.Number, typ protowire.Type, v uint64, msg []byte) error {
		switch {
		case num == fieldProgram && typ == protowire.BytesType:
			r.Program = string(msg)
		case num == fieldRuns && typ == protowire.VarintType:
			r.Runs = int(v)
		case num == fieldTrace && typ == protowire.BytesType:
			var rec TraceRecord

			err := fields(msg, func(num protowire.Number, typ protowire.Type, v uint64, _ []byte) error {
				switch num {
				case fieldRecordAddr:
					rec.Addr = uint32(v)
				case fieldRecordCount:
					rec.Count = int(v)
				}

				return nil
			})

			if err != nil {
				return fmt.Errorf("invalid trace record, %v", err)
			}

			r.Trace = append(r.Trace, rec)
		case num == fieldAttack && typ == protowire.BytesType:
			var a Attack

			err := fields(msg, func(num protowire.Number, typ protowire.Type, _ uint64, fmsg []byte) error {
				if num != fieldAttackFault || typ != protowire.BytesType {
					return nil
				}

				f, err := unmarshalFault(fmsg)

				if err != nil {
					return err
				}

				a.Faults = append(a.Faults, f)

				return nil
			})

			if err != nil {
				return fmt.Errorf("invalid attack, %v", err)
			}

			r.Attacks = append(r.Attacks, a)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return r, nil
}

// MarshalResults encodes a sequence of results, each length prefixed.
func MarshalResults(results []*Result) (b []byte) {
	for _, r := range results {
		b = protowire.AppendBytes(b, r.Marshal())
	}

	return
}

// UnmarshalResults decodes a sequence encoded with MarshalResults.
func UnmarshalResults(b []byte) (results []*Result, err error) {
	for len(b) > 0 {
		msg, n := protowire.ConsumeBytes(b)

		if n < 0 {
			return nil, protowire.ParseError(n)
		}

		r, err := UnmarshalResult(msg)

		if err != nil {
			return nil, err
		}

		results = append(results, r)
		b = b[n:]
	}

	return
}
