package main

import (
	"context"
	"fmt"
	"strings"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	newPersona string
	clearAll   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Manage persona chat sessions",
}

var chatNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new session with a persona",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := core.ChatbotService.CreateSession(context.Background(), &dto.CreateSessionRequest{PersonaId: newPersona})
		if err != nil {
			return err
		}
		fmt.Printf("Started %s (%s)\n", session.Title, session.Id)
		printSession(session)
		return nil
	},
}

var chatListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List sessions, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := core.ChatbotService.ListSessions(context.Background())
		if err != nil {
			return err
		}
		for _, s := range sessions {
			marker := " "
			if s.Current {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  %d messages\n", marker, s.Id, personaColor(s.PersonaId).Sprint(s.Title), s.MessageCount)
		}
		return nil
	},
}

var chatUseCmd = &cobra.Command{
	Use:   "use [session-id]",
	Short: "Make a session current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := core.ChatbotService.SetCurrentSession(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Now chatting in %s\n", session.Title)
		return nil
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send [message...]",
	Short: "Send a message to the current session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		current, err := core.ChatbotService.GetCurrentSession(ctx)
		if err != nil {
			return err
		}

		res, err := core.ChatbotService.SendChat(ctx, &dto.SendChatRequest{
			ChatSessionId: current.Id,
			Chat:          strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		if res.Error != "" {
			systemColor.Println(res.Error)
			return nil
		}
		printReply(current.PersonaId, res.Reply.BrainName, res.Reply.Content)
		return nil
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print a session transcript (current session by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		var (
			session *dto.SessionResponse
			err     error
		)
		if len(args) == 1 {
			session, err = core.ChatbotService.GetSession(ctx, args[0])
		} else {
			session, err = core.ChatbotService.GetCurrentSession(ctx)
		}
		if err != nil {
			return err
		}
		printSession(session)
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear [session-id]",
	Short: "Delete one session, or every session with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if clearAll {
			fresh, err := core.ChatbotService.DeleteAllSessions(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("All sessions deleted. Started %s\n", fresh.Title)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("give a session id or pass --all")
		}
		if err := core.ChatbotService.DeleteSession(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func printSession(session *dto.SessionResponse) {
	color.New(color.Bold).Printf("%s\n", session.Title)
	for _, m := range session.Messages {
		if m.Role == "user" {
			fmt.Printf("you: %s\n", m.Content)
			continue
		}
		printReply(session.PersonaId, m.BrainName, m.Content)
	}
}

func printReply(personaId, brainName, content string) {
	c := personaColor(personaId)
	if brainName == constant.SafetyPersonaName {
		c = systemColor
	}
	fmt.Printf("%s: %s\n", c.Sprint(brainName), content)
}

func init() {
	chatNewCmd.Flags().StringVarP(&newPersona, "persona", "p", "", "Persona id (see 'brain personas')")
	chatClearCmd.Flags().BoolVar(&clearAll, "all", false, "Delete every session")

	chatCmd.AddCommand(chatNewCmd, chatListCmd, chatUseCmd, chatSendCmd, chatShowCmd, chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}
