package app

import (
	"fmt"

	"github.com/dshills/grindmap/internal/level"
)

// CommandKind names an editor command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdNew
	CmdOpen   // Path
	CmdSave   // Falls through to a Save As prompt for untitled documents
	CmdSaveAs // Path
	CmdUndo
	CmdRedo
	CmdAdjustHeight // Delta
	CmdSetPrefab    // Prefab
	CmdSelectAll
	CmdClearSelection
	CmdReload
	CmdQuit
	CmdPromptOpen
	CmdPromptSaveAs
)

var commandNames = map[CommandKind]string{
	CmdNone:           "none",
	CmdNew:            "file.new",
	CmdOpen:           "file.open",
	CmdSave:           "file.save",
	CmdSaveAs:         "file.saveAs",
	CmdUndo:           "edit.undo",
	CmdRedo:           "edit.redo",
	CmdAdjustHeight:   "edit.adjustHeight",
	CmdSetPrefab:      "edit.setPrefab",
	CmdSelectAll:      "selection.all",
	CmdClearSelection: "selection.clear",
	CmdReload:         "file.reload",
	CmdQuit:           "app.quit",
	CmdPromptOpen:     "prompt.open",
	CmdPromptSaveAs:   "prompt.saveAs",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a message on the application queue. Only the fields its Kind
// names are used.
type Command struct {
	Kind   CommandKind
	Delta  int
	Prefab level.Prefab
	Path   string
}

func (c Command) String() string {
	switch c.Kind {
	case CmdOpen, CmdSaveAs:
		return fmt.Sprintf("%s %s", c.Kind, c.Path)
	case CmdAdjustHeight:
		return fmt.Sprintf("%s %+d", c.Kind, c.Delta)
	case CmdSetPrefab:
		return fmt.Sprintf("%s %s", c.Kind, c.Prefab)
	default:
		return c.Kind.String()
	}
}
