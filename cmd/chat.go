// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"kavio/cli/internal/chatbot"
	"kavio/cli/internal/httperrors"
	"kavio/cli/internal/notify"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chatMessage string

// chatCmd talks to the support chatbot. With --message it does a single
// exchange; without it drops into an interactive loop where delivery
// problems surface through an auto-dismissing notification stack instead of
// breaking the conversation.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the Kavio support chatbot",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		bot := chatbot.New(a.cfg.ChatbotBaseURL)

		if chatMessage != "" {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			reply, err := bot.Send(ctx, chatMessage)
			if err != nil {
				reportFailure(a.notifier, "talking to the chatbot", err)
				return errors.New("chatbot request failed")
			}
			pterm.Println(reply)
			return nil
		}

		return chatLoop(cmd.Context(), bot, a.cfg.ChatbotBaseURL)
	}),
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and print the reply")
}

func chatLoop(ctx context.Context, bot *chatbot.Client, baseURL string) error {
	center, err := notify.NewCenter(notify.DefaultDismissAfter)
	if err != nil {
		return err
	}
	defer center.Close()

	pterm.Println("Chat with Kavio support. Type 'exit' to leave.")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("you> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil // EOF ends the conversation
		}
		msg := strings.TrimSpace(line)
		if msg == "" {
			continue
		}
		if msg == "exit" || msg == "quit" {
			pterm.Println("Bye!")
			return nil
		}

		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		reply, err := bot.Send(sendCtx, msg)
		cancel()
		if err != nil {
			center.Error("Message not delivered, " + httperrors.ExtractHostFromURL(baseURL) + " did not answer")
			continue
		}
		pterm.Printf("bot> %s\n", reply)
	}
}
