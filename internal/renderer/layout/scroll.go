package layout

// scrollOffset returns the first visible row.
//
// In typewriter mode the cursor row is held at the vertical center. In
// normal mode the view scrolls only once the cursor would leave the bottom
// edge.
func scrollOffset(cursorRow, innerHeight int, typewriter bool) int {
	if typewriter {
		return max(0, cursorRow-innerHeight/2)
	}
	// A zero-height viewport still tracks the cursor row.
	return max(0, cursorRow-(max(innerHeight, 1)-1))
}
