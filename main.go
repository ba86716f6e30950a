package main

import (
	"github.com/gmstracker/backend/cmd/app"
)

func main() {
	app.Run()
}
