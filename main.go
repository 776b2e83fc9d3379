package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"trainai/anthropic"
	"trainai/chat"
	"trainai/config"
	"trainai/storage"
	"trainai/tools"
	"trainai/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	creds := config.NewCredentialStore(cfg.SecurityMethod, config.ExpandPath(cfg.SSHKeyPath))
	if err := loadCredentials(creds, cfg); err != nil {
		errorModal := ui.NewErrorModal("Credential Error",
			fmt.Sprintf("Could not unlock the credential store:\n%v\n\n"+
				"Check the [security] section of config.toml.", err))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SeedExercisesIfNeeded(); err != nil {
		fmt.Printf("Failed to seed exercise library: %v\n", err)
		os.Exit(1)
	}

	client := anthropic.NewClient(cfg.BaseURL, cfg.DefaultModel)
	executor := tools.NewExecutor(store)
	session := chat.NewService(client, executor, store, creds.APIKey, tools.Catalog())
	session.SetUnits(cfg.Units)
	defer session.Shutdown()

	p := tea.NewProgram(
		ui.NewAppView(cfg, creds, client, session, store, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running trainai: %v\n", err)
		os.Exit(1)
	}
}

// loadCredentials unlocks the credential store, prompting for the SSH key
// passphrase on the terminal when the configured key is encrypted.
func loadCredentials(creds *config.CredentialStore, cfg *config.Config) error {
	if cfg.SecurityMethod == config.SecuritySSHKey {
		keyPath := config.ExpandPath(cfg.SSHKeyPath)
		encrypted, err := config.IsSSHKeyEncrypted(keyPath)
		if err != nil {
			return err
		}
		if encrypted {
			fmt.Printf("Enter passphrase for %s: ", keyPath)
			passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read passphrase: %w", err)
			}
			creds.SetPassphrase(strings.TrimSpace(string(passphrase)))
		}
	}

	return creds.Load(cfg.DataDir())
}
