package main

import "cabsbot/internal/app"

func main() {
	app.Main()
}
