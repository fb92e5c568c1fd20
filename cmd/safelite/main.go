package main

import (
	"context"
	"log"

	"github.com/safelite/safelite/internal/safelite"
)

func main() {
	if err := safelite.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
