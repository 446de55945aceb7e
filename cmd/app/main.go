package main

import (
	"github.com/humanbelnik/filmorate/internal/app"
	"github.com/humanbelnik/filmorate/internal/config"
)

// @title Filmorate API
// @version 1.0
// @description Films, users, likes and friendships.
// @BasePath /
func main() {
	app.Go(config.Load())
}
