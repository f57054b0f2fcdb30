package headlessterm

import "strconv"

// ControlCodeKind discriminates CSI, bare ESC and OSC control codes.
type ControlCodeKind uint8

const (
	ControlCodeCSI ControlCodeKind = iota
	ControlCodeESC
	ControlCodeOSC
)

// ControlCode is a typed representation of a single CSI, ESC or OSC sequence,
// the unit that Attrs transitions (attrs_diff.go) and the Dump emitter
// (dump.go) both build and serialise. Params is a sequence of parameter
// groups; each group is itself a sequence of sub-parameters (colon-joined
// in the wire form, e.g. "4:3" for curly underline is not used by this
// dialect, but the shape is kept general to match CSI's actual grammar).
type ControlCode struct {
	Kind          ControlCodeKind
	Params        [][]uint16
	Intermediates []byte
	Action        byte
	// OSCPayload holds the raw "ps;pt" body of an OSC code (everything
	// between "ESC ]" and the terminator). Only meaningful when
	// Kind == ControlCodeOSC.
	OSCPayload []byte
}

// CSI builds a CSI control code with one parameter group per argument,
// each a single sub-parameter.
func CSI(action byte, params ...uint16) ControlCode {
	groups := make([][]uint16, len(params))
	for i, p := range params {
		groups[i] = []uint16{p}
	}
	return ControlCode{Kind: ControlCodeCSI, Params: groups, Action: action}
}

// CSIGroups builds a CSI control code from pre-grouped parameters, used
// for things like "38;5;i" where 5 and i are independent groups.
func CSIGroups(action byte, groups ...[]uint16) ControlCode {
	return ControlCode{Kind: ControlCodeCSI, Params: groups, Action: action}
}

// ESC builds a bare ESC control code.
func ESC(intermediates []byte, b byte) ControlCode {
	return ControlCode{Kind: ControlCodeESC, Intermediates: intermediates, Action: b}
}

// OSC builds an OSC control code from its raw "ps;pt" payload (the part
// between "ESC ]" and the terminator). Terminated with ST (ESC \) on
// output, since that terminator round-trips identically to BEL for every
// code this library emits.
func OSC(payload []byte) ControlCode {
	return ControlCode{Kind: ControlCodeOSC, OSCPayload: payload}
}

// AppendTo serialises the control code onto buf.
func (c ControlCode) AppendTo(buf []byte) []byte {
	switch c.Kind {
	case ControlCodeCSI:
		buf = append(buf, 0x1b, '[')
		buf = append(buf, c.Intermediates...)
		for i, group := range c.Params {
			if i != 0 {
				buf = append(buf, ';')
			}
			for j, sub := range group {
				if j != 0 {
					buf = append(buf, ':')
				}
				buf = strconv.AppendUint(buf, uint64(sub), 10)
			}
		}
		buf = append(buf, c.Action)
	case ControlCodeESC:
		buf = append(buf, 0x1b)
		buf = append(buf, c.Intermediates...)
		buf = append(buf, c.Action)
	case ControlCodeOSC:
		buf = append(buf, 0x1b, ']')
		buf = append(buf, c.OSCPayload...)
		buf = append(buf, 0x1b, '\\')
	}
	return buf
}

// fuseControlCodes merges adjacent CSI codes that share
// (intermediates, action) into one by concatenating their parameter
// groups. ESC codes break a run of fusible CSI codes. This is the
// "fuse adjacent SGR" rule from the attrs-transition contract, but it
// applies to any CSI run, not just 'm'.
func fuseControlCodes(codes []ControlCode) []ControlCode {
	fused := make([]ControlCode, 0, len(codes))
	var pending *ControlCode

	flush := func() {
		if pending != nil {
			fused = append(fused, *pending)
			pending = nil
		}
	}

	for _, c := range codes {
		if c.Kind != ControlCodeCSI {
			flush()
			fused = append(fused, c)
			continue
		}
		if pending != nil && pending.Action == c.Action && string(pending.Intermediates) == string(c.Intermediates) {
			pending.Params = append(pending.Params, c.Params...)
			continue
		}
		flush()
		cc := c
		pending = &cc
	}
	flush()

	return fused
}
