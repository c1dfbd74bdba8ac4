package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var personaColors = map[string]*color.Color{
	"default":      color.New(color.FgCyan, color.Bold),
	"therapist":    color.New(color.FgGreen, color.Bold),
	"business":     color.New(color.FgYellow, color.Bold),
	"relationship": color.New(color.FgMagenta, color.Bold),
}

var systemColor = color.New(color.FgRed, color.Bold)

func personaColor(personaId string) *color.Color {
	if c, ok := personaColors[personaId]; ok {
		return c
	}
	return color.New(color.FgBlue, color.Bold)
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available personas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultId := core.Personas.Default().Id
		for _, p := range core.Personas.List() {
			marker := " "
			if p.Id == defaultId {
				marker = "*"
			}
			fmt.Printf("%s %-14s %s\n", marker, p.Id, personaColor(p.Id).Sprint(p.DisplayName))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)
}
