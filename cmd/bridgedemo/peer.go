package main

import (
	"github.com/hostbridge/hostbridge"
	"github.com/hostbridge/hostbridge/config"
	"github.com/hostbridge/hostbridge/export"
	"github.com/hostbridge/hostbridge/wire"
)

// counter is the demo object the "script side" exports. The host only
// ever sees its handle.
type counter struct {
	n uint32
}

// newScriptSide builds the session playing the script runtime's role:
// it exports a Counter type the host drives by handle.
func newScriptSide(t hostbridge.Transport, cfg config.Session) *hostbridge.Session {
	s := hostbridge.NewSession(t, cfg)

	s.Exports.RegisterFunc("Counter::new", func(args *wire.Decoder, result *wire.Encoder) error {
		start, err := args.U32()
		if err != nil {
			return err
		}
		id := s.Heap.Insert(&counter{n: start})
		result.PushU32(uint32(id))
		return nil
	})

	s.Exports.RegisterType("Counter", s.Heap, map[string]export.Method{
		"increment": func(recv any, args *wire.Decoder, result *wire.Encoder) error {
			delta, err := args.U32()
			if err != nil {
				return err
			}
			c := recv.(*counter)
			c.n += delta
			result.PushU32(c.n)
			return nil
		},
		"value": func(recv any, _ *wire.Decoder, result *wire.Encoder) error {
			result.PushU32(recv.(*counter).n)
			return nil
		},
	})

	return s
}
