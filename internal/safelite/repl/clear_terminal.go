package repl

import (
	"os"
	"os/exec"
	"runtime"
)

// clearTerminal clears the terminal screen in supported operating
// systems.
func clearTerminal() {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = os.Stdout
		_ = cmd.Run()
		return
	}

	cmd := exec.Command("clear")
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}
