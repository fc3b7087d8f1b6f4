// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih_test

import (
	"math"
	"testing"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
	"github.com/f-secure-foundry/armory-fih/internal/fih/fihtest"
)

func TestEncodeDecode(t *testing.T) {
	fihtest.Trap(t)

	for _, v := range []uint32{0, 1, 0x12345678, math.MaxUint32} {
		if got := fih.EncodeUint(v).Decode(); got != v {
			t.Errorf("EncodeUint(%#x).Decode() = %#x", v, got)
		}
	}

	for _, v := range []int32{0, -1, fih.PositiveValue, fih.NegativeValue, math.MinInt32} {
		if got := fih.EncodeInt(v).Decode(); got != v {
			t.Errorf("EncodeInt(%#x).Decode() = %#x", v, got)
		}
	}
}

func TestNegativeValue(t *testing.T) {
	nv := fih.NegativeValue

	if uint32(nv) != 0xAAAA5555 {
		t.Fatalf("NegativeValue = %#x", uint32(nv))
	}
}

func TestEqIndependentEncodings(t *testing.T) {
	fihtest.Trap(t)

	x := fih.EncodeUint(0x123B)
	y := fih.EncodeUint(0x1000).Add(0x23B)

	if rc := x.Eq(y); rc != fih.True {
		t.Fatalf("Eq = %#x, want True", rc)
	}

	if rc := x.NotEq(y); rc == fih.True {
		t.Fatal("NotEq returned True for equal values")
	}

	if rc := x.Eq(fih.EncodeUint(0x123A)); rc == fih.True {
		t.Fatal("Eq returned True for different values")
	}

	if rc := fih.Success.Eq(fih.EncodeInt(fih.PositiveValue)); rc != fih.True {
		t.Fatal("Success does not compare equal to its plain value")
	}

	if rc := fih.Success.Eq(fih.Failure); rc == fih.True {
		t.Fatal("Success compares equal to Failure")
	}
}

func TestEqSingleBitCorruption(t *testing.T) {
	fihtest.Trap(t)

	for _, v := range []uint32{0, 1, 0x12345678, math.MaxUint32} {
		x := fih.EncodeUint(v)

		for bit := 0; bit < fih.Bits; bit++ {
			var rc fih.Result

			corrupted := x.Flip(bit)
			faulted := fih.Catch(func() {
				rc = corrupted.Eq(x)
			})

			if !faulted && rc == fih.True {
				t.Fatalf("value %#x with bit %d flipped compares equal", v, bit)
			}

			faulted = fih.Catch(func() {
				rc = x.Eq(corrupted)
			})

			if !faulted && rc == fih.True {
				t.Fatalf("value %#x compares equal to copy with bit %d flipped", v, bit)
			}
		}
	}
}

func TestOrdering(t *testing.T) {
	fihtest.Trap(t)

	tests := []struct {
		x, y               uint32
		gt, ge, lt, le, ne bool
	}{
		{1, 2, false, false, true, true, true},
		{2, 1, true, true, false, false, true},
		{7, 7, false, true, false, true, false},
		{0, math.MaxUint32, false, false, true, true, true},
	}

	for _, tt := range tests {
		x := fih.EncodeUint(tt.x)
		y := fih.EncodeUint(tt.y)

		check := func(name string, rc fih.Result, want bool) {
			if (rc == fih.True) != want {
				t.Errorf("%s(%d, %d) = %#x, want %v", name, tt.x, tt.y, rc, want)
			}
		}

		check("Gt", x.Gt(y), tt.gt)
		check("Ge", x.Ge(y), tt.ge)
		check("Lt", x.Lt(y), tt.lt)
		check("Le", x.Le(y), tt.le)
		check("NotEq", x.NotEq(y), tt.ne)
	}
}

func TestIntOrdering(t *testing.T) {
	fihtest.Trap(t)

	neg := fih.EncodeInt(-5)
	pos := fih.EncodeInt(5)

	if neg.Lt(pos) != fih.True || neg.Le(pos) != fih.True {
		t.Error("-5 is not less than 5")
	}

	if neg.Gt(pos) == fih.True || neg.Ge(pos) == fih.True {
		t.Error("-5 is greater than 5")
	}

	if pos.NotEq(neg) != fih.True {
		t.Error("5 equals -5")
	}
}

func TestOrAnd(t *testing.T) {
	fihtest.Trap(t)

	x := fih.EncodeUint(0xF0F0)
	y := fih.EncodeUint(0x0FF0)

	if got := x.Or(y).Decode(); got != 0xFFF0 {
		t.Errorf("Or = %#x", got)
	}

	if got := x.And(y).Decode(); got != 0x00F0 {
		t.Errorf("And = %#x", got)
	}
}

func TestAddSub(t *testing.T) {
	fihtest.Trap(t)

	x := fih.UintZero

	for i := uint32(1); i <= 10; i++ {
		x = x.Add(i)
	}

	if got := x.Decode(); got != 55 {
		t.Fatalf("sum = %d, want 55", got)
	}

	if got := x.Sub(55).Decode(); got != 0 {
		t.Fatalf("difference = %d, want 0", got)
	}

	fihtest.MustFault(t, func() { fih.UintMax.Add(1) })
	fihtest.MustFault(t, func() { fih.EncodeUint(math.MaxUint32 - 2).Add(5) })
	fihtest.MustFault(t, func() { fih.UintZero.Sub(1) })
	fihtest.MustNotFault(t, func() { fih.EncodeUint(math.MaxUint32 - 5).Add(5) })
}

func TestCombine(t *testing.T) {
	fihtest.Trap(t)

	fihtest.MustNotFault(t, func() {
		if got := fih.CombineUint(42, 42).Decode(); got != 42 {
			t.Errorf("CombineUint = %d", got)
		}
	})

	fihtest.MustFault(t, func() { fih.CombineUint(42, 43) })
	fihtest.MustFault(t, func() { fih.CombineInt(-1, 1) })
}

func TestEncodeZeroEquality(t *testing.T) {
	fihtest.Trap(t)

	if fih.EncodeZeroEquality(0).Eq(fih.Success) != fih.True {
		t.Error("zero is not Success")
	}

	for _, v := range []int32{1, -1, math.MaxInt32} {
		if fih.EncodeZeroEquality(v).Eq(fih.Failure) != fih.True {
			t.Errorf("%d is not Failure", v)
		}
	}
}

func TestBool(t *testing.T) {
	fihtest.Trap(t)

	if fih.Result(fih.Bool(true).Decode()) != fih.True {
		t.Error("Bool(true) is not True")
	}

	if fih.Result(fih.Bool(false).Decode()) != fih.False {
		t.Error("Bool(false) is not False")
	}
}
