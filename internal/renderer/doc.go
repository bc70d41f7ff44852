// Package renderer provides the display layer for the Clack editor.
//
// The renderer is responsible for:
//   - Painting the header with the file name
//   - Painting the paper: borders, padding and the margin guide
//   - Painting the visible rows of a layout frame with theme styles
//   - Painting the footer with mode indicators, counts and key hints
//   - Drawing the help overlay
//   - Placing the terminal cursor
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Draw)               │
//	├─────────────────────────────────────────┤
//	│  layout.Frame │ theme.Theme │ core      │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend         │
//	└─────────────────────────────────────────┘
//
// The renderer holds no document state. Callers compute a frame with the
// layout engine and pass it in a Screen snapshot:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, theme.New(theme.Dark), config.DefaultLayoutConfig())
//	w, h := r.BodySize()
//	frame := layouts.Compute(doc, layout.View{Width: w, Height: h})
//	r.Draw(renderer.Screen{Frame: frame})
package renderer
