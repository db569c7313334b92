package main

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// composeInEditor suspends the TUI and opens $EDITOR on a temp file
// seeded with the current draft. Whatever the editor saves becomes the
// new input value.
func composeInEditor(draft string) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	f, err := os.CreateTemp("", "querygenie-*.md")
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}
	path := f.Name()
	if _, err := f.WriteString(draft); err != nil {
		f.Close()
		os.Remove(path)
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}
	f.Close()

	c := exec.Command(editor, path)
	return tea.ExecProcess(c, func(execErr error) tea.Msg {
		defer os.Remove(path)
		if execErr != nil {
			return editorFinishedMsg{err: execErr}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return editorFinishedMsg{err: err}
		}
		return editorFinishedMsg{draft: trimDraft(string(data))}
	})
}
