package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/leftmike/colfilter/table"
)

const (
	historyFile = ".colfilter_history"
)

type lineReader struct {
	line *liner.State
}

func (lr lineReader) ReadLine() (string, error) {
	s, err := lr.line.Prompt("filter: ")
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	} else if err != nil {
		return "", err
	}
	if s != "" {
		lr.line.AppendHistory(s)
	}
	return s, nil
}

// Interact runs filter expressions typed at the terminal against t.
func Interact(t *table.Table, opts Options) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	err := Run(lineReader{line: line}, t, os.Stdout, opts)

	if f, err := os.Create(historyFile); err != nil {
		fmt.Fprintf(os.Stderr, "colfilter: error writing history file, %s: %s\n", historyFile,
			err)
	} else {
		line.WriteHistory(f)
		f.Close()
	}
	return err
}
