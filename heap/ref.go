package heap

import (
	"strconv"

	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/wire"
)

// PushRef stores an opaque value in the table and emits its id as a
// 64-bit value, making the value addressable by the peer.
func (t *Table) PushRef(e *wire.Encoder, value any) ID {
	id := t.Insert(value)
	e.PushU64(uint64(id))
	return id
}

// ReadRef reads a 64-bit id emitted by the peer's PushRef and resolves
// it against this table.
func (t *Table) ReadRef(d *wire.Decoder) (any, ID, error) {
	raw, err := d.U64()
	if err != nil {
		return nil, 0, err
	}
	id := ID(raw)
	value, ok := t.Get(id)
	if !ok {
		return nil, 0, errors.ArgumentMismatch(nil, "heap id "+strconv.FormatUint(raw, 10)+" does not name a live slot")
	}
	return value, id, nil
}
