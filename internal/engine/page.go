package engine

// CurrentPage returns the 1-based page holding the cursor's row.
func (e *Engine) CurrentPage() int {
	_, row := e.CursorPosition()
	return row/e.typewriter.LinesPerPage + 1
}

// LastPage returns the highest page the cursor has reached. It only
// decreases when a new document is loaded.
func (e *Engine) LastPage() int {
	return e.lastPage
}

// CheckPageFeed reports true once per newly reached page. Repeated calls on
// the same page report false.
func (e *Engine) CheckPageFeed() bool {
	return e.advancePage()
}

func (e *Engine) advancePage() bool {
	page := e.CurrentPage()
	if page <= e.lastPage {
		return false
	}
	e.lastPage = page
	return true
}
