package headlessterm

// TransitionTo computes the minimal ordered sequence of SGR (CSI ... m)
// and OSC-8 codes that moves the terminal from the prev Attrs to next,
// with adjacent SGR codes fused into one CSI. This is the contract
// described in spec.md §4.1: only differing dimensions are emitted, and
// tri-state dimensions (weight, underline, blink, framed) emit a reset
// followed by a new-set code when transitioning between two non-default
// variants, since there is no direct variant-to-variant SGR code.
func (prev Attrs) TransitionTo(next Attrs) []ControlCode {
	if prev.Equal(next) {
		return nil
	}

	var codes []ControlCode

	if prev.Fg != next.Fg {
		codes = append(codes, fgSGR(next.Fg))
	}
	if prev.Bg != next.Bg {
		codes = append(codes, bgSGR(next.Bg))
	}
	if prev.Weight != next.Weight {
		if prev.Weight != WeightNone {
			codes = append(codes, CSI('m', 22))
		}
		switch next.Weight {
		case WeightBold:
			codes = append(codes, CSI('m', 1))
		case WeightFaint:
			codes = append(codes, CSI('m', 2))
		}
	}
	if prev.Italic != next.Italic {
		if next.Italic {
			codes = append(codes, CSI('m', 3))
		} else {
			codes = append(codes, CSI('m', 23))
		}
	}
	if prev.Underline != next.Underline {
		if prev.Underline != UnderlineNone {
			codes = append(codes, CSI('m', 24))
		}
		switch next.Underline {
		case UnderlineSingle:
			codes = append(codes, CSI('m', 4))
		case UnderlineDouble:
			codes = append(codes, CSI('m', 21))
		}
	}
	if prev.Inverse != next.Inverse {
		if next.Inverse {
			codes = append(codes, CSI('m', 7))
		} else {
			codes = append(codes, CSI('m', 27))
		}
	}
	if prev.Blink != next.Blink {
		if prev.Blink != BlinkNone {
			codes = append(codes, CSI('m', 25))
		}
		switch next.Blink {
		case BlinkSlow:
			codes = append(codes, CSI('m', 5))
		case BlinkRapid:
			codes = append(codes, CSI('m', 6))
		}
	}
	if prev.Conceal != next.Conceal {
		if next.Conceal {
			codes = append(codes, CSI('m', 8))
		} else {
			codes = append(codes, CSI('m', 28))
		}
	}
	if prev.Strikethrough != next.Strikethrough {
		if next.Strikethrough {
			codes = append(codes, CSI('m', 9))
		} else {
			codes = append(codes, CSI('m', 29))
		}
	}
	if prev.Framed != next.Framed {
		if prev.Framed != FramedNone {
			codes = append(codes, CSI('m', 54))
		}
		switch next.Framed {
		case FramedFrame:
			codes = append(codes, CSI('m', 51))
		case FramedCircle:
			codes = append(codes, CSI('m', 52))
		}
	}
	if prev.Overline != next.Overline {
		if next.Overline {
			codes = append(codes, CSI('m', 53))
		} else {
			codes = append(codes, CSI('m', 55))
		}
	}

	codes = fuseControlCodes(codes)

	if !prev.Link.Equal(next.Link) {
		codes = append(codes, linkOSC(next.Link))
	}

	return codes
}

func fgSGR(c Color) ControlCode {
	switch c.Kind {
	case ColorDefault:
		return CSI('m', 39)
	case ColorIndexed:
		if c.Index < 8 {
			return CSI('m', uint16(c.Index)+30)
		}
		if c.Index < 16 {
			return CSI('m', uint16(c.Index)+82)
		}
		return CSIGroups('m', []uint16{38}, []uint16{5}, []uint16{uint16(c.Index)})
	default:
		return CSIGroups('m', []uint16{38}, []uint16{2}, []uint16{uint16(c.R)}, []uint16{uint16(c.G)}, []uint16{uint16(c.B)})
	}
}

func bgSGR(c Color) ControlCode {
	switch c.Kind {
	case ColorDefault:
		return CSI('m', 49)
	case ColorIndexed:
		if c.Index < 8 {
			return CSI('m', uint16(c.Index)+40)
		}
		if c.Index < 16 {
			return CSI('m', uint16(c.Index)+92)
		}
		return CSIGroups('m', []uint16{48}, []uint16{5}, []uint16{uint16(c.Index)})
	default:
		return CSIGroups('m', []uint16{48}, []uint16{2}, []uint16{uint16(c.R)}, []uint16{uint16(c.G)}, []uint16{uint16(c.B)})
	}
}

// linkOSC builds the OSC 8 code that sets (or, when link is nil, clears)
// the hyperlink target.
func linkOSC(link *Hyperlink) ControlCode {
	payload := []byte("8;")
	if link != nil {
		payload = append(payload, link.Params...)
	}
	payload = append(payload, ';')
	if link != nil {
		payload = append(payload, link.URL...)
	}
	return OSC(payload)
}
