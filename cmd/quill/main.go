package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"quill/internal/assist"
	"quill/internal/config"
	"quill/internal/logger"
	"quill/internal/store"
	"quill/internal/tools"
	"quill/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting quill...")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open task store: %v", err)
	}
	defer st.Close()

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "list":
			runList(st)
			return
		case "add":
			runAdd(st, args[1:])
			return
		}
	}

	// Interactive TUI mode: quill
	client := anthropic.NewClient()
	assistant := assist.New(&client, tools.TaskTools(st), cfg.Model)
	if err := tui.Run(st, assistant); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runList(st *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasks, err := st.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list tasks: %v", err)
	}
	for _, task := range tasks {
		mark := " "
		if task.Done {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, task.ID, task.Title)
	}
}

func runAdd(st *store.Store, args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: quill add <title> [details]")
	}
	title := args[0]
	details := strings.Join(args[1:], " ")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task, err := st.Create(ctx, title, details)
	if err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}
	fmt.Printf("Created %s\n", task.ID)
}
