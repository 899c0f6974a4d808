package main

import (
	"github.com/labstack/gommon/log"

	"github.com/Shmhzr/ai-voice/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.Fatalf("ai-voice: %v", err)
	}
}
