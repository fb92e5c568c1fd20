package repl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/safelite/safelite/internal/log"
	"github.com/safelite/safelite/internal/safelite/seed"
)

// cmdSeed handles ".seed N": N generated rows inserted in one
// transaction, with progress on stderr.
func cmdSeed(r *Repl, input string) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		r.printError(fmt.Errorf("usage: .seed [count]"))
		return
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		r.printError(fmt.Errorf("seed count must be a positive integer, got %q", fields[1]))
		return
	}

	if err := seed.Insert(r.conn, n, os.Stderr, log.Noop()); err != nil {
		r.printError(err)
		return
	}

	fmt.Printf("Seeded %d rows\n", n)
}
