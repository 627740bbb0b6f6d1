package view

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Options configure the viewer.
type Options struct {
	Width  int
	Height int
	// In opens an OpenEXR file instead of rendering the gradient.
	In string
}

// messageEvent carries a Message through the tcell event queue, so
// background command results are handled on the event loop like input.
type messageEvent struct {
	when time.Time
	msg  Message
}

func (e *messageEvent) When() time.Time { return e.when }

// Run drives the interactive viewer until the user quits.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	state := NewState(opts.Width, opts.Height)
	dispatch := func(m Message) {
		var cmds []Cmd
		state, cmds = Update(state, m)
		for _, cmd := range cmds {
			go func(c Cmd) {
				_ = screen.PostEvent(&messageEvent{when: time.Now(), msg: c()})
			}(cmd)
		}
	}

	if opts.In != "" {
		dispatch(OpenRequested{Path: opts.In})
	} else {
		dispatch(RenderRequested{})
	}

	for !state.Quit {
		draw(screen, state)
		switch ev := screen.PollEvent().(type) {
		case *messageEvent:
			dispatch(ev.msg)
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if m := keyMessage(ev, state); m != nil {
				dispatch(m)
			}
		}
	}
	return nil
}

// keyMessage translates a key event into a message. Printable runes edit
// the filename input, which is always focused.
func keyMessage(ev *tcell.EventKey, s State) Message {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return QuitRequested{}
	case tcell.KeyCtrlR:
		return RenderRequested{}
	case tcell.KeyEnter, tcell.KeyCtrlS:
		return SaveRequested{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.FileName) > 0 {
			return FileNameChanged{Name: s.FileName[:len(s.FileName)-1]}
		}
	case tcell.KeyRune:
		if r := ev.Rune(); r >= ' ' {
			return FileNameChanged{Name: s.FileName + string(r)}
		}
	}
	return nil
}
