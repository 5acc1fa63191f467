package lp50xx

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

var errNACK = errors.New("nack")

type tx struct {
	addr uint16
	w    []byte
	rlen int
}

// fakeI2C is a register file with LP50xx auto-increment semantics.
// failAt makes the n-th transaction (1-based) fail with errNACK.
type fakeI2C struct {
	regs   [256]byte
	log    []tx
	failAt int
}

func newFakeLP50xx() *fakeI2C {
	f := &fakeI2C{}
	f.regs[regDeviceConfig1] = byte(CfgDefault)
	return f
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.log = append(f.log, tx{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	if f.failAt != 0 && len(f.log) == f.failAt {
		return errNACK
	}
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	for i, b := range w[1:] {
		f.regs[(reg+i)&0xFF] = b
	}
	for i := range r {
		r[i] = f.regs[(reg+i)&0xFF]
	}
	return nil
}

// writes returns the number of logged write-only transactions.
func (f *fakeI2C) writes() int {
	n := 0
	for _, t := range f.log {
		if t.rlen == 0 {
			n++
		}
	}
	return n
}
