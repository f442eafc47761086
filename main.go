package main

import (
	"log"

	"github.com/google/gops/agent"

	"github.com/flanksource/arch-map/cmd"
)

func main() {
	// Start gops agent for runtime debugging
	if err := agent.Listen(agent.Options{
		ShutdownCleanup: true,
	}); err != nil {
		log.Printf("Failed to start gops agent: %v", err)
	}
	defer agent.Close()

	cmd.Execute()
}
