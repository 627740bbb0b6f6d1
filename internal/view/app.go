// Package view implements the interactive terminal viewer: immutable
// application state, tagged messages and a pure reducer, with rendering
// and saving running as background commands.
package view

import (
	"fmt"

	"github.com/vvzen/acesrender"
)

// DefaultFileName seeds the filename input.
const DefaultFileName = "sample_file"

// Message is a user action or the result of a background command.
type Message interface{ isMessage() }

// FileNameChanged replaces the filename input contents.
type FileNameChanged struct{ Name string }

// RenderRequested starts a render of the procedural gradient.
type RenderRequested struct{}

// OpenRequested starts loading a scene-linear image from an EXR file.
type OpenRequested struct{ Path string }

// RenderFinished delivers the result of a render or open command.
type RenderFinished struct {
	Scene   *acesrender.SceneImage
	Display *acesrender.DisplayImage
	Err     error
}

// SaveRequested starts saving the current image.
type SaveRequested struct{}

// SaveFinished delivers the result of a save command.
type SaveFinished struct {
	Path string
	Err  error
}

// QuitRequested ends the event loop.
type QuitRequested struct{}

func (FileNameChanged) isMessage() {}
func (RenderRequested) isMessage() {}
func (OpenRequested) isMessage()   {}
func (RenderFinished) isMessage()  {}
func (SaveRequested) isMessage()   {}
func (SaveFinished) isMessage()    {}
func (QuitRequested) isMessage()   {}

// Cmd is a background task started by the reducer. It runs off the event
// loop and its result message is posted back in.
type Cmd func() Message

// State holds the whole application state. Update returns a new value
// rather than mutating.
type State struct {
	FileName  string
	Width     int
	Height    int
	Scene     *acesrender.SceneImage
	Display   *acesrender.DisplayImage
	Rendering bool
	Saving    bool
	Status    string
	Quit      bool
}

// NewState returns the initial state for a w by h render target.
func NewState(w, h int) State {
	return State{
		FileName: DefaultFileName,
		Width:    w,
		Height:   h,
		Status:   "Ctrl-R to render",
	}
}

// SavePath returns the filename with its extension applied.
func (s State) SavePath() string {
	return acesrender.WithExt(s.FileName)
}

// Update folds a message into the state and returns the commands to
// start. It never blocks and never touches the terminal.
func Update(s State, m Message) (State, []Cmd) {
	switch m := m.(type) {
	case FileNameChanged:
		s.FileName = m.Name

	case RenderRequested:
		if s.Rendering {
			return s, nil
		}
		s.Rendering = true
		s.Status = fmt.Sprintf("rendering %dx%d...", s.Width, s.Height)
		w, h := s.Width, s.Height
		return s, []Cmd{func() Message {
			scene := acesrender.RenderGradient(w, h)
			display := acesrender.EncodeDisplay(scene, acesrender.DefaultTonemapParams())
			return RenderFinished{Scene: scene, Display: display}
		}}

	case OpenRequested:
		if s.Rendering {
			return s, nil
		}
		s.Rendering = true
		s.Status = "opening " + m.Path + "..."
		path := m.Path
		return s, []Cmd{func() Message {
			scene, err := acesrender.ReadEXRFile(path)
			if err != nil {
				return RenderFinished{Err: err}
			}
			display := acesrender.EncodeDisplay(scene, acesrender.DefaultTonemapParams())
			return RenderFinished{Scene: scene, Display: display}
		}}

	case RenderFinished:
		s.Rendering = false
		if m.Err != nil {
			s.Status = "open failed: " + m.Err.Error()
			return s, nil
		}
		s.Scene = m.Scene
		s.Display = m.Display
		s.Status = fmt.Sprintf("rendered %dx%d", m.Display.W, m.Display.H)

	case SaveRequested:
		if s.Saving {
			return s, nil
		}
		if s.Scene == nil && s.Display == nil {
			s.Status = "nothing to save, render first"
			return s, nil
		}
		s.Saving = true
		path := s.SavePath()
		s.Status = "saving " + path + "..."
		scene, display := s.Scene, s.Display
		return s, []Cmd{func() Message {
			return SaveFinished{Path: path, Err: acesrender.Save(path, scene, display)}
		}}

	case SaveFinished:
		s.Saving = false
		if m.Err != nil {
			s.Status = "save failed: " + m.Err.Error()
		} else {
			s.Status = "saved " + m.Path
		}

	case QuitRequested:
		s.Quit = true
	}
	return s, nil
}
