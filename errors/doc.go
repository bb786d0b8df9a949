// Package errors provides structured error types for the bridge.
//
// Every failure carries a Phase (where in processing it occurred) and a
// Kind (what went wrong), so callers can match on errors.Is without
// string inspection:
//
//	_, err := dec.U32()
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindMalformedMessage}) {
//	    // short or inconsistent frame
//	}
//
// The bridge never retries: all errors surface synchronously at the call
// site that triggered them, which may be deep inside a reentrant chain.
package errors
