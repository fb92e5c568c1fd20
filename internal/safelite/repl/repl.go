// Package repl implements the interactive prompt of the safelite CLI.
// Every statement typed at the prompt runs through the guarded handle
// layer against the in-process connection.
package repl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/safelite/safelite/internal/notnull"
	"github.com/safelite/safelite/internal/safelite/styled"
	"github.com/safelite/safelite/internal/sqliteh"
)

type Repl struct {
	conn        notnull.Value[sqliteh.Conn]
	ctx         context.Context
	stop        context.CancelFunc
	tx          *sqliteh.Tx
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conn notnull.Value[sqliteh.Conn],
) Repl {
	return Repl{
		conn:        conn,
		ctx:         ctx,
		stop:        stop,
		historyPath: filepath.Join(os.TempDir(), ".safelite_history"),
	}
}

func (r *Repl) Start() error {
	fmt.Println()
	fmt.Printf("Connected to %s\n", r.conn.Get().Name())
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt()

			if input == "" {
				continue
			}

			if input == "exit" || input == ".exit" || input == ".quit" {
				r.Shutdown()
				return nil
			}

			if input == "clear" || input == ".clear" {
				clearTerminal()
				continue
			}

			if input == "help" || input == ".help" {
				cmdHelp()
				continue
			}

			if input == ".tables" {
				cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = 'table'`)
				continue
			}

			if input == ".schema" {
				cmdQuery(r, `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL`)
				continue
			}

			if input == ".begin" {
				cmdBegin(r)
				continue
			}

			if input == ".commit" {
				cmdCommit(r)
				continue
			}

			if input == ".rollback" {
				cmdRollback(r)
				continue
			}

			if strings.HasPrefix(input, ".seed") {
				cmdSeed(r, input)
				continue
			}

			if strings.HasPrefix(input, ".") {
				fmt.Println("Unknown command, type .help for usage hints")
				continue
			}

			cmdQuery(r, input)
		}
	}
}

// Shutdown stops the REPL, rolling back any transaction still open at
// the prompt.
func (r *Repl) Shutdown() {
	if r.tx != nil {
		if err := r.tx.Rollback(); err == nil {
			fmt.Println("Open transaction rolled back")
		}
		r.tx = nil
	}
	r.stop()
}

// printError renders an error without terminating the prompt.
func (r *Repl) printError(err error) {
	fmt.Println(styled.ErrorColor().Sprintf("Error: %v", err))
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	label := "safelite> "
	if r.tx != nil {
		label = fmt.Sprintf("safelite(%s)> ", r.tx.ID())
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt(label)
	if err != nil {
		if err == liner.ErrPromptAborted {
			fmt.Println("CTRL+C pressed, exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}
