// Command create-mentor creates a mentor account from interactive input.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
)

type mentorInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
}

var errPasswordMismatch = errors.New("passwords do not match")

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readMentorInput asks for every account field and validates the answers
func readMentorInput(in io.Reader, out io.Writer) (mentorInput, error) {
	reader := bufio.NewReader(in)
	var input mentorInput
	var err error

	if input.FullName, err = prompt(reader, out, "Full name: "); err != nil {
		return input, err
	}
	if input.Email, err = prompt(reader, out, "Email: "); err != nil {
		return input, err
	}
	if input.PhoneNumber, err = prompt(reader, out, "Phone number: "); err != nil {
		return input, err
	}
	if input.Password, err = prompt(reader, out, "Password: "); err != nil {
		return input, err
	}
	confirm, err := prompt(reader, out, "Confirm password: ")
	if err != nil {
		return input, err
	}

	if input.FullName == "" || input.PhoneNumber == "" {
		return input, errors.New("full name and phone number are required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return input, fmt.Errorf("invalid email: %w", err)
	}
	input.Email = model.NormalizeEmail(input.Email)
	if len(input.Password) < 8 {
		return input, errors.New("password must be at least 8 characters")
	}
	if input.Password != confirm {
		return input, errPasswordMismatch
	}
	return input, nil
}

func createMentor(ctx context.Context, db *database.DBinstanceStruct, input mentorInput) (model.Mentor, error) {
	taken, err := db.EmailTaken(ctx, input.Email)
	if err != nil {
		return model.Mentor{}, err
	}
	if taken {
		return model.Mentor{}, fmt.Errorf("email %s is already taken", input.Email)
	}

	hashed, err := utilities.HashPassword(input.Password)
	if err != nil {
		return model.Mentor{}, fmt.Errorf("failed to hash password: %w", err)
	}

	mentor := model.Mentor{Account: model.Account{
		Email:       input.Email,
		Password:    hashed,
		Role:        model.RoleMentor,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
	}}
	if err := db.WithContext(ctx).Create(&mentor).Error; err != nil {
		return model.Mentor{}, fmt.Errorf("failed to create mentor: %w", err)
	}
	return mentor, nil
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)

	fmt.Println("Creating mentor account")
	input, err := readMentorInput(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db, err := database.GetMainDB(cfg.DB)
	if err != nil {
		logger.Fatal("database failed to initialize", "error", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mentor, err := createMentor(ctx, db, input)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Mentor account created successfully!")
	fmt.Println("======================================")
	fmt.Printf("ID:    %s\n", mentor.ID)
	fmt.Printf("Email: %s\n", mentor.Email)
	fmt.Println("======================================")
}
