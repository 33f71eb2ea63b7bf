package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HarishP23/OneStop/internal/client"
	"github.com/HarishP23/OneStop/internal/model"
)

var jobFilter client.JobFilter

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job postings",
	RunE:  runJobs,
}

var applyOpts struct {
	name       string
	phone      string
	resume     string
	resumeFile string
}

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job",
	Long:  "Submits an application for the logged in account. --resume-file uploads a PDF first and uses its URL.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List your job applications",
	RunE:  runApplications,
}

func init() {
	jobsCmd.Flags().StringVar(&jobFilter.Search, "search", "", "substring of the position")
	jobsCmd.Flags().StringVar(&jobFilter.Location, "location", "", "substring of the location")
	jobsCmd.Flags().StringVar(&jobFilter.Type, "type", "", "substring of the job type")
	jobsCmd.Flags().StringVar(&jobFilter.Tag, "tag", "", "exact tag")
	jobsCmd.Flags().StringVar(&jobFilter.Company, "company", "", "substring of the company")
	jobsCmd.Flags().BoolVar(&jobFilter.Desc, "desc", false, "newest first")

	applyCmd.Flags().StringVar(&applyOpts.name, "name", "", "applicant name")
	applyCmd.Flags().StringVar(&applyOpts.phone, "phone", "", "applicant phone number")
	applyCmd.Flags().StringVar(&applyOpts.resume, "resume", "", "resume URL")
	applyCmd.Flags().StringVar(&applyOpts.resumeFile, "resume-file", "", "PDF resume to upload")

	rootCmd.AddCommand(jobsCmd, applyCmd, applicationsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	_, api, _, err := session()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	jobs, err := api.ListJobs(ctx, jobFilter)
	if err != nil {
		return err
	}
	printJobs(jobs)
	return nil
}

func printJobs(jobs []model.Job) {
	fmt.Printf("%-36s  %-30s %-18s %-20s %s\n", "ID", "Position", "Company", "Location", "Tags")
	fmt.Println(strings.Repeat("─", 120))
	for _, j := range jobs {
		fmt.Printf("%-36s  %-30s %-18s %-20s %s\n", j.ID, truncate(j.Position, 30), truncate(j.Company, 18), truncate(j.Location, 20), strings.Join(j.Tags, ", "))
	}
	fmt.Printf("\nTotal: %d jobs\n", len(jobs))
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, api, _, err := session()
	if err != nil {
		return err
	}
	if cfg.UserID == "" {
		return errors.New("log in first with `onestop login`")
	}

	ctx, cancel := requestContext()
	defer cancel()

	resume := applyOpts.resume
	if applyOpts.resumeFile != "" {
		if resume, err = api.UploadResume(ctx, applyOpts.resumeFile); err != nil {
			return fmt.Errorf("resume upload failed: %w", err)
		}
	}

	msg, err := api.Apply(ctx, client.ApplicationRequest{
		Name:   applyOpts.name,
		Phone:  applyOpts.phone,
		Resume: resume,
		JobID:  args[0],
		UserID: cfg.UserID,
	})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runApplications(cmd *cobra.Command, args []string) error {
	cfg, api, _, err := session()
	if err != nil {
		return err
	}
	if cfg.UserID == "" {
		return errors.New("log in first with `onestop login`")
	}

	ctx, cancel := requestContext()
	defer cancel()

	apps, err := api.UserApplications(ctx, cfg.UserID)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("You have not applied to any job yet.")
		return nil
	}

	fmt.Printf("%-36s  %-30s %-10s %s\n", "ID", "Job", "Status", "Submitted")
	fmt.Println(strings.Repeat("─", 100))
	for _, a := range apps {
		fmt.Printf("%-36s  %-30s %-10s %s\n", a.ID, truncate(a.JobTitle, 30), a.Status, a.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
