package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapduel/internal/registry"
	"github.com/vovakirdan/flapduel/internal/session"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List game modes",
	Long:  `Shows the modes selectable on the title menu and with 'play --mode'.`,
	Run:   runModes,
}

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List autopilot policies",
	Long: `Shows the registered autopilot policies. The policy used for AI lanes
is set by autopilot.policy in the game config.`,
	Run: runPilots,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := session.Modes()

	maxKeyLen := 3 // "Key" header
	for _, m := range modes {
		maxKeyLen = max(maxKeyLen, len(m.Key()))
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxKeyLen, "Key", "Title")
	fmt.Printf("  %-*s  %s\n", maxKeyLen, "---", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxKeyLen, m.Key(), m)
	}

	fmt.Println()
	fmt.Println("Run 'flapduel play --mode <key>' to start a mode directly.")
}

func runPilots(_ *cobra.Command, _ []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, p := range pilots {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Println("Autopilot policies:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}
}
