// Package headlessterm implements a headless virtual terminal emulator: it
// consumes the byte stream a pseudo-terminal shell would write (UTF-8 text
// intermixed with ECMA-48 / VT / xterm escape sequences) and maintains the
// structured screen state a real terminal emulator would display. On
// demand it re-serialises that state back into a byte sequence of escape
// sequences which, fed to any conforming terminal, reproduces the current
// display.
//
// It exists to let a session multiplexer, logger, or test harness attach
// and detach clients from a long-running shell without losing what the
// shell has drawn: feed all shell output through Process, and on client
// attach replay Contents to paint the client's terminal.
//
// # Quick Start
//
//	term := headlessterm.New(1000, headlessterm.Size{Width: 80, Height: 24})
//	term.Process([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(string(term.Contents(headlessterm.RegionScreen())))
//
// # Architecture
//
//   - [Terminal]: owns both screens, the parser, and dispatch state.
//   - [Screen]: a façade over either [Scrollback] or [AltScreen].
//   - [Scrollback]: the primary screen's bounded, reflow-aware line deque.
//   - [AltScreen]: the fixed-height alternate screen used by full-screen
//     applications (vim, less, htop), which retains no history.
//   - [Line] / [Cell]: a row of fixed-width cells, and a single grid
//     position's grapheme cluster, width, and style.
//   - [Attrs] / [Color] / [ControlCode]: per-cell style and the minimal
//     SGR/OSC-8 transitions between two styles.
//
// # Dual screens
//
// Terminal maintains a primary (scrollback-backed) screen and an alternate
// screen. Applications switch between them with CSI ?1049h / CSI ?1049l.
// Entering the alternate screen always starts from a blank grid; exiting it
// restores the primary screen exactly as it was, since the primary screen
// is never mutated while the alternate screen is active.
//
// # Concurrency
//
// There is no concurrency model inside Terminal: [Terminal.Process] and
// [Terminal.Contents] must not overlap from the caller's perspective.
// Terminal's internal mutex exists only so a concurrent host (e.g. a
// multiplexer serving several attached clients) does not need to build its
// own external locking layer.
//
// # Error handling
//
// Malformed or unrecognised escape sequences are logged at warn level via
// [WithLogger]'s *slog.Logger (discarded if unset) and otherwise
// ignored; a subsequent well-formed sequence continues to apply normally.
// Process and Contents never return an error. Construction-time misuse —
// a zero-width terminal, or building a [Cell] from a control character —
// is a programmer error and panics rather than silently mis-rendering.
//
// # Non-goals
//
// Sixel/image protocols, DCS-hooked payloads, terminfo-driven capability
// negotiation, and bidi/shaping are out of scope. The contract is
// round-trip fidelity at the semantic level (what the user sees), not
// bit-exact reproduction of every xterm quirk.
package headlessterm
