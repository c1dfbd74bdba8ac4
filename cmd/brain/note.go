package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ai-brain-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearConfirmed bool

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Capture and query notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := core.NoteService.Create(context.Background(), &dto.CreateNoteRequest{Text: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		fmt.Printf("Note saved (%d total)\n", core.Notes.Len())
		fmt.Printf("  %s\n", res.Text)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List notes, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := core.NoteService.List(context.Background())
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}
		dim := color.New(color.Faint)
		for _, n := range notes {
			fmt.Printf("[%d] %s %s\n", n.Index, dim.Sprint(n.CreatedAt.Local().Format("Jan 2 15:04")), n.Text)
		}
		return nil
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:   "rm [index]",
	Short: "Remove the note shown at index by 'note ls'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		removed, err := core.NoteService.Delete(context.Background(), index)
		if err != nil {
			return err
		}
		fmt.Printf("Removed: %s\n", removed.Text)
		return nil
	},
}

var noteClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every note (requires --yes)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := core.NoteService.Clear(context.Background(), clearConfirmed); err != nil {
			return fmt.Errorf("%w: pass --yes to delete all notes", err)
		}
		fmt.Println("All notes deleted.")
		return nil
	},
}

var noteAskCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question about your notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := core.NoteService.Ask(context.Background(), &dto.AskNotesRequest{Question: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		printReply(core.Personas.Default().Id, res.BrainName, res.Answer)
		return nil
	},
}

func init() {
	noteClearCmd.Flags().BoolVarP(&clearConfirmed, "yes", "y", false, "Confirm deleting all notes")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteRemoveCmd, noteClearCmd, noteAskCmd)
	rootCmd.AddCommand(noteCmd)
}
