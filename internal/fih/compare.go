// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih

import (
	"math"
)

// All comparisons follow the same sequence: both operands are validated, the
// primary words are compared, the backup words are compared, then the primary
// words are read again and an affirmative result which contradicts them is
// treated as a fault.

// Eq returns True if x == y.
func (x Uint) Eq(y Uint) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() == y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() == y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() != y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// NotEq returns True if x != y.
func (x Uint) NotEq(y Uint) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() != y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() != y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() == y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Gt returns True if x > y.
func (x Uint) Gt(y Uint) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() > y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() > y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() <= y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Ge returns True if x >= y.
func (x Uint) Ge(y Uint) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() >= y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() >= y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() < y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Lt returns True if x < y.
func (x Uint) Lt(y Uint) Result {
	return y.Gt(x)
}

// Le returns True if x <= y.
func (x Uint) Le(y Uint) Result {
	return y.Ge(x)
}

// Or returns x | y.
func (x Uint) Or(y Uint) Uint {
	x.Validate()
	y.Validate()

	val := x.Value() | y.Value()

	Delay()

	return CombineUint(val, x.Check()|y.Check())
}

// And returns x & y.
func (x Uint) And(y Uint) Uint {
	x.Validate()
	y.Validate()

	val := x.Value() & y.Value()

	Delay()

	return CombineUint(val, x.Check()&y.Check())
}

// Add returns x + n, both words are updated independently. Overflow is
// treated as a fault.
func (x Uint) Add(n uint32) Uint {
	if x.Decode() > math.MaxUint32-n {
		Panic()
	}

	val := x.Value() + n

	Delay()

	return CombineUint(val, x.Check()+n)
}

// Sub returns x - n, both words are updated independently. Underflow is
// treated as a fault.
func (x Uint) Sub(n uint32) Uint {
	if x.Decode() < n {
		Panic()
	}

	val := x.Value() - n

	Delay()

	return CombineUint(val, x.Check()-n)
}

// Eq returns True if x == y.
func (x Int) Eq(y Int) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() == y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() == y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() != y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// NotEq returns True if x != y.
func (x Int) NotEq(y Int) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() != y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() != y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() == y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Gt returns True if x > y.
func (x Int) Gt(y Int) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() > y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() > y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() <= y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Ge returns True if x >= y.
func (x Int) Ge(y Int) Result {
	rc := False

	x.Validate()
	y.Validate()

	if x.Value() >= y.Value() {
		rc = true1
	}

	Delay()

	if x.Check() >= y.Check() {
		rc |= true2
	}

	Delay()

	if x.Value() < y.Value() {
		if rc == True {
			Panic()
		}
	}

	return rc
}

// Lt returns True if x < y.
func (x Int) Lt(y Int) Result {
	return y.Gt(x)
}

// Le returns True if x <= y.
func (x Int) Le(y Int) Result {
	return y.Ge(x)
}
