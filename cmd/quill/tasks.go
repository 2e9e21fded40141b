package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/device"
)

func tasksCmd() *cli.Command {
	return &cli.Command{
		Name:    "tasks",
		Aliases: []string{"ls"},
		Usage:   "List the available rewrite tasks",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println("Rewrite tasks:")
			fmt.Println()
			for _, task := range assist.Tasks() {
				fmt.Printf("  %-12s %-18s %s\n", string(task), task.Label(), task.Instruction())
			}
			fmt.Println()
			fmt.Printf("devices: %s\n", device.Available())
			return nil
		},
	}
}
