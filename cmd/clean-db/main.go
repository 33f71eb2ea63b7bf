// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
)

// confirmed reports whether the operator typed "yes"
func confirmed(in io.Reader) bool {
	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	return strings.TrimSpace(strings.ToLower(input)) == "yes"
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)

	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	if !confirmed(os.Stdin) {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.GetMainDB(cfg.DB)
	if err != nil {
		logger.Fatal("database failed to initialize", "error", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.DropAllTables(ctx); err != nil {
		logger.Fatal("failed to execute drop command", "error", err)
	}

	fmt.Println("All tables dropped successfully.")
}
