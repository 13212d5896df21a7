package main

import (
	"github.com/joho/godotenv"

	"csvtable/cmd"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()
	cmd.Execute()
}
