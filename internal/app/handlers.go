package app

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/clack/internal/engine"
	"github.com/dshills/clack/internal/renderer/backend"
	"github.com/dshills/clack/internal/renderer/theme"
	"github.com/dshills/clack/internal/sound"
	"github.com/dshills/clack/internal/watcher"
)

// HandleEvent applies one event to the session. It returns ErrQuit when the
// session should end.
func (a *App) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventInterrupt:
		return a.handleInterrupt(ev.Data)
	}
	// Resize needs nothing: every draw lays out against the current size.
	return nil
}

func (a *App) handleInterrupt(data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case watcher.Event:
		a.logger.WithComponent("watcher").Info("%s changed on disk (%v)", d.Path, d.Op)
		if d.Op.Has(watcher.OpRemove) || d.Op.Has(watcher.OpRename) {
			a.setStatus(fmt.Sprintf("%s was removed on disk", filepath.Base(d.Path)))
		} else {
			a.setStatus(fmt.Sprintf("%s changed on disk", filepath.Base(d.Path)))
		}
	}
	return nil
}

func (a *App) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape:
		if a.help {
			a.help = false
			return nil
		}
		return ErrQuit
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return ErrQuit

	case backend.KeyCtrlS:
		// Save reports failures through the status line.
		_ = a.Save()

	case backend.KeyCtrlT, backend.KeyF3:
		a.typewriter = !a.typewriter
		a.audio.Trigger(sound.Toggle)
	case backend.KeyF1:
		a.help = !a.help
		a.audio.Trigger(sound.Toggle)
	case backend.KeyF2:
		a.focus = !a.focus
		a.audio.Trigger(sound.Toggle)
	case backend.KeyF4:
		a.toggleSound()
	case backend.KeyF5:
		a.cycleTheme()
		a.audio.Trigger(sound.Toggle)
	case backend.KeyF6:
		a.doubleSpacing = !a.doubleSpacing
		a.audio.Trigger(sound.Toggle)

	case backend.KeyEnter:
		a.clearStatus()
		a.engine.InsertNewline()
		a.audio.Trigger(sound.Return)
		a.feedIfNewPage()
	case backend.KeyRune:
		a.clearStatus()
		a.typeRune(ev.Rune)
	case backend.KeyBackspace:
		a.clearStatus()
		if a.engine.DeleteBackward() {
			a.audio.Trigger(sound.Backspace)
		}
	case backend.KeyDelete:
		a.clearStatus()
		if a.engine.DeleteForward() {
			a.audio.Trigger(sound.Backspace)
		}

	case backend.KeyLeft:
		if ev.Mod.Has(backend.ModCtrl) {
			a.engine.MoveWordLeft()
		} else {
			a.engine.MoveLeft()
		}
	case backend.KeyRight:
		if ev.Mod.Has(backend.ModCtrl) {
			a.engine.MoveWordRight()
		} else {
			a.engine.MoveRight()
		}
	case backend.KeyUp:
		a.engine.MoveUp()
	case backend.KeyDown:
		if a.engine.MoveDown() {
			a.feed()
		}
	case backend.KeyHome:
		a.engine.MoveLineStart()
	case backend.KeyEnd:
		a.engine.MoveLineEnd()
	}
	return nil
}

// typeRune inserts r subject to the margin bell.
func (a *App) typeRune(r rune) {
	res := a.engine.InsertChar(r)
	if res == engine.MarginBlocked {
		a.audio.Trigger(sound.Bell)
		return
	}

	if r == ' ' {
		a.audio.Trigger(sound.Space)
	} else {
		a.audio.Trigger(sound.Key)
	}
	if res == engine.MarginWarning {
		a.audio.Trigger(sound.Bell)
	}
	a.feedIfNewPage()
}

func (a *App) feedIfNewPage() {
	if a.engine.CheckPageFeed() {
		a.feed()
	}
}

// feed plays the page feed and holds input for the feed pause.
func (a *App) feed() {
	a.audio.Trigger(sound.Feed)
	if d := a.prefs.Typewriter.PageFeedPause(); d > 0 {
		a.sleep(d)
	}
	a.logger.Debug("fed page %d", a.engine.LastPage())
}

// toggleSound flips sound effects. The toggle click only plays when sound
// is turned on.
func (a *App) toggleSound() {
	on := !a.audio.Enabled()
	a.audio.SetEnabled(on)
	if on {
		a.audio.Trigger(sound.Toggle)
	}
}

func (a *App) cycleTheme() {
	a.themeType = a.themeType.Next()
	a.renderer.SetTheme(theme.New(a.themeType))
}
