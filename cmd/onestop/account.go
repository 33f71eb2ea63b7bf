package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HarishP23/OneStop/internal/client"
	"github.com/HarishP23/OneStop/internal/model"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  "Opens the signup form. After a successful signup the login form is shown.",
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the access token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the saved access token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	_, api, _, err := session()
	if err != nil {
		return err
	}

	form, err := client.RunForm(client.NewSignupForm(api))
	if err != nil {
		return err
	}
	if !form.Succeeded() {
		return nil
	}
	fmt.Println(form.Notice().Text)

	return runLogin(cmd, args)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, api, path, err := session()
	if err != nil {
		return err
	}

	remember := func(resp *model.LoginResponse) error {
		cfg.Token = resp.Token
		cfg.Email = resp.Data.Email
		cfg.UserID = resp.Data.ID.String()
		cfg.Role = resp.Role
		return cfg.Save(path)
	}

	form, err := client.RunForm(client.NewLoginForm(api, remember))
	if err != nil {
		return err
	}
	if form.Succeeded() {
		fmt.Printf("%s as %s (%s)\n", form.Notice().Text, cfg.Email, cfg.Role)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, api, path, err := session()
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return errors.New("not logged in")
	}

	ctx, cancel := requestContext()
	defer cancel()

	// the local session is dropped even when the server rejects an expired token
	logoutErr := api.Logout(ctx)
	cfg.ClearSession()
	if err := cfg.Save(path); err != nil {
		return err
	}
	if logoutErr != nil {
		return fmt.Errorf("server logout failed: %w", logoutErr)
	}
	fmt.Println("Successfully logged out")
	return nil
}
