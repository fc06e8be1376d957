package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for input the flags did not provide.
type Prompter interface {
	Input(title, placeholder string) (string, error)
	Password(title string) (string, error)
	Confirm(message string) (bool, error)
}

type huhPrompter struct{}

func (huhPrompter) Input(title, placeholder string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

func (huhPrompter) Password(title string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

func (huhPrompter) Confirm(message string) (bool, error) {
	var confirmed bool
	confirm := huh.NewConfirm().
		Title(message).
		Affirmative("Sim").
		Negative("Não").
		Value(&confirmed)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}
