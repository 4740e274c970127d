package tui

import (
	"path/filepath"
	"time"

	"github.com/theirongolddev/benchavg/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// DataChangedMsg is sent when the watched data file was written or created.
type DataChangedMsg struct {
	Path string
}

// WatchErrorMsg reports a watcher failure. The dashboard keeps running
// without live reload.
type WatchErrorMsg struct {
	Err error
}

type watchStartedMsg struct {
	w *fileWatcher
}

const watchDebounce = 150 * time.Millisecond

// fileWatcher follows one file by watching its directory, so editors that
// replace the file by rename are caught as a create.
type fileWatcher struct {
	w      *fsnotify.Watcher
	target string
	events chan tea.Msg
	done   chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		if closeErr := w.Close(); closeErr != nil {
			logging.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	fw := &fileWatcher{
		w:      w,
		target: abs,
		events: make(chan tea.Msg, 1),
		done:   make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *fileWatcher) loop() {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				fw.send(DataChangedMsg{Path: fw.target})
			})

		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.send(WatchErrorMsg{Err: err})

		case <-fw.done:
			return
		}
	}
}

// send drops the message when one is already pending; a reload covers both.
func (fw *fileWatcher) send(msg tea.Msg) {
	select {
	case fw.events <- msg:
	default:
	}
}

// Close stops the watcher. Safe on a nil receiver.
func (fw *fileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.w.Close()
}

func startWatchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		fw, err := newFileWatcher(path)
		if err != nil {
			return WatchErrorMsg{Err: err}
		}
		return watchStartedMsg{w: fw}
	}
}

// waitForChange blocks until the watcher reports the next change.
func waitForChange(fw *fileWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-fw.events:
			return msg
		case <-fw.done:
			return nil
		}
	}
}
