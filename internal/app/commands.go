package app

import (
	"errors"
	"io/fs"

	"github.com/dshills/grindmap/internal/session"
)

// execute runs one queued command against the session.
func (app *Application) execute(cmd Command) error {
	app.log.Debug("execute %s", cmd)

	switch cmd.Kind {
	case CmdNone:
	case CmdNew:
		app.session.NewDocument()
		app.watch()
		app.info("New map")
	case CmdOpen:
		app.openFile(cmd.Path)
	case CmdSave:
		app.save()
	case CmdSaveAs:
		app.saveAs(cmd.Path)
	case CmdPromptOpen:
		app.prompt = newPrompt("Open: ", CmdOpen, "")
	case CmdPromptSaveAs:
		app.prompt = newPrompt("Save as: ", CmdSaveAs, app.session.Document().Path)
	case CmdUndo:
		if !app.session.Undo() {
			app.nothingTo("undo")
		}
	case CmdRedo:
		if !app.session.Redo() {
			app.nothingTo("redo")
		}
	case CmdAdjustHeight:
		app.session.AdjustHeight(cmd.Delta)
	case CmdSetPrefab:
		app.session.SetPrefab(cmd.Prefab)
	case CmdSelectAll:
		app.session.SelectAll()
	case CmdClearSelection:
		app.session.ClearSelection()
	case CmdReload:
		app.reload()
	case CmdQuit:
		return app.quit()
	default:
		app.log.Warn("unknown command %s", cmd)
	}
	return nil
}

func (app *Application) openFile(path string) {
	if err := app.session.OpenFile(path); err != nil {
		app.fail(err)
		return
	}
	app.watch()
	app.info("Opened %s", app.session.Document().Name)
}

func (app *Application) save() {
	err := app.session.SaveFile()
	switch {
	case err == nil:
		app.info("Saved %s", app.session.Document().Name)
	case errors.Is(err, session.ErrUntitled):
		app.Dispatch(Command{Kind: CmdPromptSaveAs})
	default:
		app.fail(err)
	}
}

func (app *Application) saveAs(path string) {
	if err := app.session.SaveFileAs(path); err != nil {
		app.fail(err)
		return
	}
	app.watch()
	app.info("Saved %s", app.session.Document().Name)
}

func (app *Application) reload() {
	changed, err := app.session.Reload()
	switch {
	case err == nil:
		if changed {
			app.info("Reloaded %s", app.session.Document().Name)
		}
	case errors.Is(err, session.ErrChangedOnDisk):
		app.warn("%s changed on disk; save to overwrite it or reopen to discard your changes", app.session.Document().Name)
	case errors.Is(err, fs.ErrNotExist):
		app.warn("%s was removed from disk", app.session.Document().Name)
	default:
		app.fail(err)
	}
}

func (app *Application) nothingTo(what string) {
	app.info("Nothing to %s", what)
	if app.view != nil {
		app.backend.Beep()
	}
}

// quit exits unless there are unsaved changes and this is the first request.
func (app *Application) quit() error {
	if app.session.Modified() && !app.quitArmed {
		app.quitArmed = true
		app.warn("Unsaved changes: press Ctrl+Q again to quit")
		return nil
	}
	return ErrQuit
}
