// Package ui contains the Bubble Tea program that renders padnav's frames.
// The Model owns every piece of per-frame state and runs a fixed-rate frame
// loop driven by tea.Tick.
//
// Frame flow:
//   - Each frameMsg samples the pad exactly once; every consumer in the frame
//     reads that one snapshot.
//   - While the picker is open the section list owns input: D-pad up/down
//     moves the list cursor and Cross raises a selection event.
//   - The navigation state (internal/ui/state.Navigation) then applies the
//     selection event or the Triangle menu edge.
//   - Panes receive the snapshot; only the selected pane, and only when the
//     content area kept focus for the whole frame, reacts to input.
//   - Bubble Tea renders View after Update returns, so a frame is always
//     sampled, navigated and drawn before the next one starts.
//
// Keyboard input does not drive navigation directly. With a simulated link
// keys press virtual pad buttons, which show up in the next frame's snapshot
// like any physical press.
package ui
