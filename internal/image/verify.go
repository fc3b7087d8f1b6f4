// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package image

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log"

	"golang.org/x/mod/semver"

	"github.com/f-secure-foundry/armory-fih/internal/cfi"
	"github.com/f-secure-foundry/armory-fih/internal/fih"
	"github.com/f-secure-foundry/armory-fih/internal/fihmem"
)

// Verification flow checkpoints, one per check.
const (
	FlowStart = 0x123B
	FlowEnd   = FlowStart - 3
)

// Verifier checks boot images against compile-time reference values.
type Verifier struct {
	counter    *cfi.Counter
	reference  fih.Uint
	digest     []byte
	minVersion string
}

// NewVerifier returns a verifier for images whose first payload word equals
// reference, whose payload hashes to digest and whose version is not older
// than minVersion. A nil counter selects the process wide one.
func NewVerifier(counter *cfi.Counter, reference uint32, digest []byte, minVersion string) (*Verifier, error) {
	if len(digest) != sha256.Size {
		return nil, fmt.Errorf("invalid reference digest size %d", len(digest))
	}

	if !semver.IsValid(minVersion) {
		return nil, fmt.Errorf("invalid minimum version %q", minVersion)
	}

	if counter == nil {
		counter = cfi.Default()
	}

	return &Verifier{
		counter:    counter,
		reference:  fih.EncodeUint(reference),
		digest:     append([]byte{}, digest...),
		minVersion: minVersion,
	}, nil
}

// Verify returns fih.Success if img passes all checks, fih.Failure if any
// check fails. Detected faults invoke fih.Panic.
func (v *Verifier) Verify(img *Image) fih.Int {
	return v.counter.Call(func() fih.Int {
		return v.counter.Ret(v.verify(img))
	})
}

func (v *Verifier) verify(img *Image) fih.Int {
	flow := cfi.NewFlow(FlowStart)

	if semver.Compare(img.Version, v.minVersion) < 0 {
		return fih.Failure
	}

	fih.Delay()

	if !semver.IsValid(img.Version) || semver.Compare(v.minVersion, img.Version) > 0 {
		fih.Panic()
	}

	flow.Checkpoint()

	word := fih.EncodeUint(img.Word())

	if word.Eq(v.reference) != fih.True {
		return fih.Failure
	}

	fih.Delay()

	if word.NotEq(v.reference) == fih.True {
		fih.Panic()
	}

	flow.Checkpoint()
	flow.Expect(2)

	sum := sha256.Sum256(img.Payload)
	rc := fihmem.Compare(sum[:], v.digest, fih.EncodeUint(sha256.Size))

	if rc.Eq(fih.Bool(true)) != fih.True {
		return fih.Failure
	}

	fih.Delay()

	if rc.NotEq(fih.Bool(true)) == fih.True {
		fih.Panic()
	}

	flow.Checkpoint()

	flow.Expect(3)
	flow.Final(FlowEnd)

	return fih.Success
}

// ErrRejected is reported by Check for images failing verification.
var ErrRejected = errors.New("image verification failed")

// Check verifies img, unlike Boot it reports rejection as an error, fault
// detection still invokes fih.Panic.
func (v *Verifier) Check(img *Image) error {
	rc := v.Verify(img)

	if rc.Eq(fih.Success) != fih.True {
		return ErrRejected
	}

	fih.Delay()

	if rc.NotEq(fih.Success) == fih.True {
		fih.Panic()
	}

	return nil
}

// Boot verifies img and hands over to launch, which must not return. Images
// failing verification invoke fih.Panic.
func (v *Verifier) Boot(img *Image, launch func(*Image)) {
	rc := v.Verify(img)

	if rc.Eq(fih.Success) != fih.True {
		log.Printf("verification negative path : OK")
		fih.Panic()
	}

	fih.Delay()

	if rc.NotEq(fih.Success) == fih.True {
		fih.Panic()
	}

	log.Printf("verification positive path  : OK")

	launch(img)
}

// SimLaunch signals a successful boot on the simulation sentinel.
func SimLaunch(*Image) {
	fih.WriteSentinel(fih.SimSuccess)
}
