package main

import (
	"github.com/joho/godotenv"
	"github.com/lucaruboni/restaurant-advisor/cmd"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	cmd.Execute()
}
