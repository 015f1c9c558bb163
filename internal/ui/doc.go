// Package ui contains the Bubble Tea program that renders one list screen.
// The Model focuses on message orchestration while dedicated helpers own
// navigation, text input, pickers, rendering, and feed updates.
//
// Message flow:
//   - Update routes each tea.Msg through a typed handler registry so key
//     presses, debounce ticks, search responses, action results, and feed
//     events are each handled by a focused function.
//   - Keystrokes in the search box go to search.Executor, which debounces
//     them and later dispatches the request as a tea.Cmd. Responses come back
//     as search.ResultMsg and are reconciled into the list state.
//
// State ownership:
//   - The working list (items, selection, search, filter, cursor) lives in
//     internal/ui/state.List and is only mutated from Update.
//   - Raw section payloads are kept in internal/state and refreshed by the
//     dispatcher. The model rebinds them into a display map whenever a feed
//     reports a change, reusing on-screen values so pending actions survive.
//   - Item actions run through the internal/ui/command bus.
package ui
