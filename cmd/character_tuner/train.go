package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tetraminz/character_tuning/internal/characters"
	"github.com/tetraminz/character_tuning/internal/hub"
	"github.com/tetraminz/character_tuning/internal/trainer"
	"github.com/tetraminz/character_tuning/internal/training"
)

const jobPollInterval = 10 * time.Second

var terminalJobStatuses = map[string]bool{
	"succeeded": true,
	"failed":    true,
	"cancelled": true,
}

func runTrainCmd(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	dataPath := fs.String("data", "", "Path to transcript CSV (Speaker, Dialogue columns)")
	character := fs.String("character", "", "Target character name")
	minWords := fs.Int("min_words", training.DefaultMinWords, "Minimum word count for a response line")
	column := fs.String("column", training.DefaultColumn, "Dataset column name the trainer reads")
	trainerURL := fs.String("trainer_url", "", "Base URL of the fine-tuning service")
	baseModel := fs.String("base_model", trainer.DefaultBaseModel, "Base causal LM to tune")
	modelsJSON := fs.String("models_json", "", "Optional character->repo mapping JSON file")
	watch := fs.Bool("watch", false, "Poll the job until it finishes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*trainerURL) == "" {
		return errors.New("--trainer_url is required")
	}

	catalog, err := loadCatalog(*modelsJSON)
	if err != nil {
		return err
	}
	outputRepo, err := catalog.Resolve(*character)
	if err != nil {
		return err
	}

	ctx := context.Background()
	hfToken := strings.TrimSpace(os.Getenv("HF_TOKEN"))

	hubClient := hub.NewClient(hfToken, "", nil)
	exists, err := hubClient.RepoExists(ctx, outputRepo)
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("train_skipped character=%s repo=%s reason=already_published\n", *character, outputRepo)
		return nil
	}
	log.Printf("adapter repo=%s not found on hub, training a new one", outputRepo)

	_, result, err := prepareDataset(*dataPath, *character, *minWords, *column)
	if err != nil {
		return err
	}
	if len(result.Set.Prompts) == 0 {
		return fmt.Errorf("no training prompts built for character %q", *character)
	}

	client, err := trainer.NewClient(os.Getenv("TRAINER_API_KEY"), *trainerURL, nil)
	if err != nil {
		return err
	}

	job, err := client.SubmitJob(ctx, trainer.JobRequest{
		BaseModel:  *baseModel,
		OutputRepo: outputRepo,
		Character:  *character,
		Prompts:    result.Set.Prompts,
		Lora:       trainer.DefaultLora(),
		SFT:        trainer.DefaultSFT(result.Set.Column),
	})
	if err != nil {
		return err
	}
	fmt.Printf("train_submitted character=%s job_id=%s status=%s repo=%s prompts=%d\n",
		*character, job.ID, job.Status, outputRepo, len(result.Set.Prompts))

	if !*watch {
		return nil
	}
	return watchJob(ctx, client, job.ID)
}

func watchJob(ctx context.Context, client *trainer.Client, jobID string) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("training "+jobID),
		progressbar.OptionSpinnerType(14),
	)
	defer bar.Finish()

	ticker := time.NewTicker(jobPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		bar.Add(1)
		job, err := client.JobStatus(ctx, jobID)
		if err != nil {
			return err
		}
		if terminalJobStatuses[job.Status] {
			fmt.Printf("\ntrain_done job_id=%s status=%s repo=%s\n", job.ID, job.Status, job.OutputRepo)
			if job.Status != "succeeded" {
				return fmt.Errorf("training job %s ended with status %s", job.ID, job.Status)
			}
			return nil
		}
		log.Printf("train_poll job_id=%s status=%s", job.ID, job.Status)
	}
}

func loadCatalog(modelsJSON string) (characters.Catalog, error) {
	if strings.TrimSpace(modelsJSON) == "" {
		return characters.NewCatalog(characters.DefaultModels()), nil
	}
	return characters.LoadCatalog(modelsJSON)
}
