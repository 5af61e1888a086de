package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tetraminz/character_tuning/internal/chat"
	"github.com/tetraminz/character_tuning/internal/hub"
)

func runChatCmd(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	character := fs.String("character", "", "Character to talk to")
	baseURL := fs.String("base_url", "", "Base URL of the inference endpoint")
	modelsJSON := fs.String("models_json", "", "Optional character->repo mapping JSON file")
	skipHubCheck := fs.Bool("skip_hub_check", false, "Skip the hub existence check for the adapter repo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*character) == "" {
		return errors.New("--character is required")
	}

	catalog, err := loadCatalog(*modelsJSON)
	if err != nil {
		return err
	}
	model, err := catalog.Resolve(*character)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !*skipHubCheck {
		hubClient := hub.NewClient(os.Getenv("HF_TOKEN"), "", nil)
		exists, err := hubClient.RepoExists(ctx, model)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("adapter repo %s is not published; run `character_tuner train --character %s` first", model, *character)
		}
	}

	client, err := chat.NewClient(os.Getenv("CHAT_API_KEY"), *baseURL, nil)
	if err != nil {
		return err
	}
	session := chat.NewSession(client, model, *character)

	userLabel := color.New(color.FgGreen, color.Bold)
	characterLabel := color.New(color.FgCyan, color.Bold)

	fmt.Printf("chatting with %s (model=%s), type \"exit\" to quit\n", *character, model)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		userLabel.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := session.Send(ctx, line)
		if err != nil {
			return fmt.Errorf("chat turn %d: %w", session.Len()+1, err)
		}
		characterLabel.Printf("%s> ", *character)
		fmt.Println(reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}
