package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	apiclient "github.com/Anduamlakalehegne/Project-Manager/pkg/api/client"
)

type cliConfig struct {
	APIBaseURL string `json:"api_base_url"`
	Token      string `json:"token"`
}

var buildVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "signup":
		err = commandSignup(args)
	case "login":
		err = commandLogin(args)
	case "projects":
		err = commandProjects(args)
	case "tasks":
		err = commandTasks(args)
	case "version", "--version", "-v":
		fmt.Printf("pm %s\n", buildVersion)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func commandSignup(args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return errors.New("--name is required")
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}

	cli, err := apiclient.New(*apiBase)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	session, err := cli.Signup(ctx, *name, *email, password)
	if err != nil {
		return err
	}
	if err := saveConfig(cliConfig{APIBaseURL: *apiBase, Token: session.Token}); err != nil {
		return err
	}
	fmt.Printf("signed up as %s (%s)\n", session.User.Name, session.User.Email)
	return nil
}

func commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	secret := strings.TrimSpace(*password)
	if secret == "" {
		var err error
		if secret, err = promptPassword(); err != nil {
			return err
		}
	}

	cli, err := apiclient.New(*apiBase)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	session, err := cli.Login(ctx, *email, secret)
	if err != nil {
		return err
	}
	if err := saveConfig(cliConfig{APIBaseURL: *apiBase, Token: session.Token}); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", session.User.Email)
	return nil
}

func commandProjects(args []string) error {
	cli, err := savedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	projects, err := cli.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no projects")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%s  %-12s  %s\n", p.ID, p.Status, p.Name)
	}
	return nil
}

func commandTasks(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: pm tasks <project-id>")
	}
	cli, err := savedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	tasks, err := cli.ListTasks(ctx, args[0])
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("%s  %-11s  %-6s  due %s  %s\n", t.ID, t.Status, t.Priority, t.DueDate, t.Title)
	}
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Print("\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", errors.New("password cannot be empty")
	}
	return secret, nil
}

func savedClient() (*apiclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("not logged in; run: pm login --email <email>")
	}
	return apiclient.New(cfg.APIBaseURL, apiclient.WithToken(cfg.Token))
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "project-manager", "config.json"), nil
}

func loadConfig() (cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return cliConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cliConfig{}, nil
		}
		return cliConfig{}, err
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func saveConfig(cfg cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func printUsage() {
	fmt.Println(`pm - project manager CLI

Usage:
  pm signup --name <name> --email <email>
  pm login --email <email> [--password <password>]
  pm projects
  pm tasks <project-id>
  pm version`)
}
