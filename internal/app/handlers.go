package app

import (
	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/renderer"
	"github.com/dshills/grindmap/internal/renderer/backend"
)

// Shifted digits on a US layout, in the order of the digit keys 1..9,0.
const shiftedDigits = "!@#$%^&*()"

func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventResize:
		if app.view != nil {
			app.view.Resize(ev.Width, ev.Height)
		}
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case fileChanged:
			app.log.Debug("file event %s on %s", data.event.Op, data.event.Path)
			app.Dispatch(Command{Kind: CmdReload})
		case quitRequest:
			// Run sees the closed done channel once this event returns.
		}
	}
	return nil
}

func (app *Application) handleKey(ev backend.Event) {
	if app.prompt != nil {
		app.handlePromptKey(ev)
		return
	}

	cmd, ok := keyCommand(ev)
	if !ok {
		return
	}
	if cmd.Kind != CmdQuit {
		app.quitArmed = false
	}
	app.Dispatch(cmd)
}

func (app *Application) handlePromptKey(ev backend.Event) {
	p := app.prompt
	switch p.handleKey(ev) {
	case promptConfirmed:
		app.prompt = nil
		if path := p.text(); path != "" {
			app.Dispatch(Command{Kind: p.kind, Path: path})
		}
	case promptCancelled:
		app.prompt = nil
		app.info("Cancelled")
	}
}

// keyCommand maps a key press to a command.
func keyCommand(ev backend.Event) (Command, bool) {
	switch ev.Key {
	case backend.KeyCtrlN:
		return Command{Kind: CmdNew}, true
	case backend.KeyCtrlO:
		return Command{Kind: CmdPromptOpen}, true
	case backend.KeyCtrlS:
		return Command{Kind: CmdSave}, true
	case backend.KeyCtrlA:
		return Command{Kind: CmdPromptSaveAs}, true
	case backend.KeyCtrlZ:
		return Command{Kind: CmdUndo}, true
	case backend.KeyCtrlY:
		return Command{Kind: CmdRedo}, true
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return Command{Kind: CmdQuit}, true
	case backend.KeyEscape:
		return Command{Kind: CmdClearSelection}, true
	case backend.KeyF1, backend.KeyF2, backend.KeyF3, backend.KeyF4, backend.KeyF5, backend.KeyF6:
		return Command{Kind: CmdSetPrefab, Prefab: level.Prefab(ev.Key - backend.KeyF1)}, true
	case backend.KeyRune:
		return runeCommand(ev.Rune, ev.Mod&backend.ModAlt != 0)
	}
	return Command{}, false
}

func runeCommand(r rune, alt bool) (Command, bool) {
	if d, ok := digitDelta(r); ok {
		if alt {
			d = -d
		}
		return Command{Kind: CmdAdjustHeight, Delta: d}, true
	}
	for i, s := range shiftedDigits {
		if r == s {
			return Command{Kind: CmdAdjustHeight, Delta: -(i + 1)}, true
		}
	}

	switch r {
	case 'x':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabNone}, true
	case 'n':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabMelee}, true
	case 'p':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabProjectile}, true
	case 'j':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabJumpPad}, true
	case 's':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabStairs}, true
	case 'h':
		return Command{Kind: CmdSetPrefab, Prefab: level.PrefabHideous}, true
	case 'a':
		return Command{Kind: CmdSelectAll}, true
	}
	return Command{}, false
}

// digitDelta maps 1..9 to +1..+9 and 0 to +10.
func digitDelta(r rune) (int, bool) {
	switch {
	case r == '0':
		return 10, true
	case r >= '1' && r <= '9':
		return int(r - '0'), true
	}
	return 0, false
}

func (app *Application) handleMouse(ev backend.Event) {
	if app.view == nil {
		return
	}

	// The wheel edits the selection wherever the pointer is and is not a
	// button press as far as box select is concerned.
	if ev.Buttons&(backend.WheelUp|backend.WheelDown) != 0 {
		step := app.cfg.Editor.ScrollStep
		if ev.Buttons&backend.WheelDown != 0 {
			step = -step
		}
		app.Dispatch(Command{Kind: CmdAdjustHeight, Delta: step})
		return
	}

	down := ev.Buttons&backend.ButtonPrimary != 0
	if down && !app.tracker.Down() && app.prompt == nil {
		if item := app.view.MenuAt(ev.MouseX, ev.MouseY); item != renderer.MenuNone {
			app.Dispatch(menuCommand(item))
			return
		}
	}

	p, panel := app.view.HitTest(ev.MouseX, ev.MouseY)
	over := panel != renderer.PanelNone
	app.hover, app.hovering = p, over

	in := app.tracker.Next(p, over, down, app.extendHeld(ev.Mod))
	app.session.UpdateBoxSelect(in)
}

func menuCommand(item renderer.MenuItem) Command {
	switch item {
	case renderer.MenuNew:
		return Command{Kind: CmdNew}
	case renderer.MenuOpen:
		return Command{Kind: CmdPromptOpen}
	case renderer.MenuSave:
		return Command{Kind: CmdSave}
	case renderer.MenuSaveAs:
		return Command{Kind: CmdPromptSaveAs}
	}
	return Command{Kind: CmdNone}
}

// extendHeld reports whether the configured extend modifier is in mod.
func (app *Application) extendHeld(mod backend.ModMask) bool {
	switch app.cfg.Editor.ExtendModifier {
	case "ctrl":
		return mod&backend.ModCtrl != 0
	case "alt":
		return mod&backend.ModAlt != 0
	default:
		return mod&backend.ModShift != 0
	}
}
