package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

const noFallback = "none (unmatched paths leave every item unmarked)"

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to navmark! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = strings.TrimSpace(title)

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 3. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the selection database",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = strings.TrimSpace(dataDir)

	// 4. Fallback item for unmatched paths.
	choices := fallbackChoices(cfg.Items)
	fallbackPrompt := promptui.Select{
		Label: "Item to highlight on unknown paths",
		Items: choices,
	}
	idx, _, err := fallbackPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fallback selection: %w", err)
	}
	if idx > 0 {
		cfg.FallbackItem = cfg.Items[idx-1].ID
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// fallbackChoices lists "none" followed by one entry per item.
func fallbackChoices(items []ItemConfig) []string {
	choices := []string{noFallback}
	for _, it := range items {
		choices = append(choices, fmt.Sprintf("%s  %s (%s)", it.ID, it.Label, it.Path))
	}
	return choices
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
