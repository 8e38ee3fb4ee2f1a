package main

import (
	"flag"
	"log"

	"github.com/Johnnypham7496/users-api/internal/app"
)

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatalln(err)
	}
}
