package main

import (
	"fmt"
	"os"

	"soundscope/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
