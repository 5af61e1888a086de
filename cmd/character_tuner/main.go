package main

/*
character_tuner builds character fine-tuning datasets from TV transcripts
and drives the external trainer and inference services.

Usage:
  character_tuner prepare --data data/merged_transcripts.csv --character Rachel
  character_tuner train   --data data/merged_transcripts.csv --character Rachel --trainer_url http://localhost:8080
  character_tuner chat    --character Rachel --base_url http://localhost:8000
  character_tuner report  --db out/character_tuning.db
  character_tuner setup   --db out/character_tuning.db

HF_TOKEN, TRAINER_API_KEY and CHAT_API_KEY are read from the environment
(a local .env file is honored).
*/

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tetraminz/character_tuning/internal/report"
	"github.com/tetraminz/character_tuning/internal/store"
)

const (
	defaultSQLitePath = "out/character_tuning.db"
	defaultOutCSV     = "out/prompts.csv"
)

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	if err := runCLI(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func runCLI() error {
	if len(os.Args) < 2 {
		printUsage()
		return nil
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "prepare":
		return runPrepareCmd(args)
	case "train":
		return runTrainCmd(args)
	case "chat":
		return runChatCmd(args)
	case "report":
		return runReportCmd(args)
	case "setup":
		return runSetupCmd(args)
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runReportCmd(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	dbPath := fs.String("db", defaultSQLitePath, "Path to SQLite DB file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	metrics, err := report.Build(*dbPath)
	if err != nil {
		return err
	}
	fmt.Print(report.Format(metrics))
	return nil
}

func runSetupCmd(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	dbPath := fs.String("db", defaultSQLitePath, "Path to SQLite DB file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := store.Setup(*dbPath); err != nil {
		return err
	}
	fmt.Printf("setup_done db=%s\n", *dbPath)
	return nil
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  character_tuner prepare --data <transcripts.csv> --character <name> [--out_csv out/prompts.csv] [--db out/character_tuning.db]")
	fmt.Println("  character_tuner train   --data <transcripts.csv> --character <name> --trainer_url <url> [--watch]")
	fmt.Println("  character_tuner chat    --character <name> --base_url <url>")
	fmt.Println("  character_tuner report  --db out/character_tuning.db")
	fmt.Println("  character_tuner setup   --db out/character_tuning.db")
}
