// Package ui provides the Bubble Tea TUI for marquee.
//
// The Model is a thin shell around the browse reducer: keyboard input and
// debounce ticks become browse events, the reducer's effect requests become
// tea.Cmds (catalog fetches, ledger writes), and the command results come
// back as messages that feed the reducer again. All I/O runs inside
// commands; Update itself never blocks.
//
// Search input debouncing works with a generation counter: every keystroke
// bumps inputSeq and schedules a tick carrying the current value; a tick
// whose generation no longer matches is ignored. Enter settles immediately.
package ui
