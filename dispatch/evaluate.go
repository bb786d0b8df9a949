package dispatch

import (
	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/wire"
)

// evaluate resolves and executes one decoded Evaluate, producing the
// Respond. The reserved ids are handled before the registry, like fixed
// syscall numbers.
func (d *Dispatcher) evaluate(dec *wire.Decoder) (*wire.Encoder, error) {
	target, err := dec.U32()
	if err != nil {
		return nil, err
	}

	switch target {
	case wire.FnInvokeCallback:
		return d.invokeCallback(dec)
	case wire.FnInvokeExport:
		return d.invokeExport(dec)
	case wire.FnCloneRef:
		return d.cloneRef(dec)
	case wire.FnReleaseRef:
		return d.releaseRef(dec)
	}

	entry, err := d.funcs.Lookup(target)
	if err != nil {
		return nil, err
	}
	if entry.Invoke == nil {
		return nil, errors.UnresolvedFunction(target, d.funcs.Len())
	}
	Logger().Debug("evaluate function",
		zap.Uint32("id", target),
		zap.String("name", entry.Name))

	var args []any
	if entry.DecodeArgs != nil {
		args, err = entry.DecodeArgs(dec)
		if err != nil {
			return nil, err
		}
	}

	resp := wire.NewRespond()
	if err := entry.Invoke(args, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// invokeCallback runs a callable heap handle: a 64-bit heap id followed
// by the callable's own arguments.
func (d *Dispatcher) invokeCallback(dec *wire.Decoder) (*wire.Encoder, error) {
	value, id, err := d.table.ReadRef(dec)
	if err != nil {
		return nil, err
	}
	cb, ok := value.(Callback)
	if !ok {
		return nil, errors.ArgumentMismatch(nil, "heap slot is not callable")
	}
	Logger().Debug("invoke callback", zap.Uint64("id", uint64(id)))

	resp := wire.NewRespond()
	if err := cb(dec, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// invokeExport runs a named export: the export-name string, then the
// receiver handle and trailing args, which the handler reads itself.
func (d *Dispatcher) invokeExport(dec *wire.Decoder) (*wire.Encoder, error) {
	name, err := dec.Str()
	if err != nil {
		return nil, err
	}
	if d.exports == nil {
		return nil, errors.UnresolvedExport(name)
	}
	handler, ok := d.exports.Resolve(name)
	if !ok {
		return nil, errors.UnresolvedExport(name)
	}
	Logger().Debug("invoke export", zap.String("name", name))

	resp := wire.NewRespond()
	if err := handler(dec, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// cloneRef duplicates a previously issued handle or function id: the
// slot value is re-inserted under a fresh id so each owner can release
// its own id without invalidating the other's.
func (d *Dispatcher) cloneRef(dec *wire.Decoder) (*wire.Encoder, error) {
	value, id, err := d.table.ReadRef(dec)
	if err != nil {
		return nil, err
	}
	clone := d.table.Insert(value)
	Logger().Debug("clone heap id",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("clone", uint64(clone)))

	resp := wire.NewRespond()
	resp.PushU64(uint64(clone))
	return resp, nil
}

// releaseRef drops a previously issued handle or function id. A missing
// id is ignored: the drop notification is best-effort and the slot may
// already be gone.
func (d *Dispatcher) releaseRef(dec *wire.Decoder) (*wire.Encoder, error) {
	raw, err := dec.U64()
	if err != nil {
		return nil, err
	}
	if _, ok := d.table.Remove(heap.ID(raw)); !ok {
		Logger().Debug("release for dead heap id", zap.Uint64("id", raw))
	}
	return wire.NewRespond(), nil
}
