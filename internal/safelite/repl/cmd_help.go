package repl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/safelite/safelite/internal/safelite/styled"
)

type dotCmd struct {
	name         string
	autocomplete string
	help         string
	args         string
}

func cmdHelpCommands() []dotCmd {
	cmds := []dotCmd{
		{name: ".seed [count]", autocomplete: ".seed", help: "Insert generated rows into the things table", args: "count (required)"},
		{name: ".begin", autocomplete: ".begin", help: "Start a transaction; it rolls back unless committed"},
		{name: ".commit", autocomplete: ".commit", help: "Commit the open transaction"},
		{name: ".rollback", autocomplete: ".rollback", help: "Roll back the open transaction"},
		{name: ".tables", autocomplete: ".tables", help: "List all tables in the database"},
		{name: ".schema", autocomplete: ".schema", help: "Show the schema of the database"},
		{name: ".clear", autocomplete: ".clear", help: "Clear the terminal screen"},
		{name: ".help", autocomplete: ".help", help: "Show the help message"},
		{name: ".quit", autocomplete: ".quit", help: "Exit the application"},
		{name: ".exit", autocomplete: ".exit", help: "Exit the application"},
		{name: "CTRL+c", help: "Exit the application"},
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].name < cmds[j].name
	})

	return cmds
}

func cmdHelp() {
	fmt.Println("Available commands:")
	cmds := cmdHelpCommands()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Command", "Description", "Arguments"})

	for _, cmd := range cmds {
		tw.AppendRow(table.Row{cmd.name, cmd.help, cmd.args})
	}

	fmt.Println(tw.Render())
}

func cmdHelpCompleter(line string) []string {
	suggestions := []string{
		"SELECT ",
		"SELECT * FROM ",
		"SELECT COUNT(*) FROM ",
		"INSERT INTO ",
		"UPDATE ",
		"DELETE FROM ",
		"CREATE TABLE ",
		"DROP TABLE ",
	}

	for _, cmd := range cmdHelpCommands() {
		if cmd.autocomplete != "" {
			suggestions = append(suggestions, cmd.autocomplete)
		}
	}

	results := []string{}
	for _, suggestion := range suggestions {
		if strings.HasPrefix(strings.ToLower(suggestion), strings.ToLower(line)) {
			results = append(results, suggestion)
		}
	}

	return results
}
