package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var welcomeLines = [...]string{
	"Your campaigns are waiting. Your credentials apparently are not.",
	"Somewhere, a draft campaign sits at zero assets. It knows whose fault that is.",
	"Five services are up. Your session is the only thing that's down.",
	"Ad copy doesn't write itself. Well, it does. But you have to log in first.",
	"The credit ledger shows no activity. Auditors call that 'suspiciously quiet.'",
	"Every paused campaign was once a draft with ambition.",
	"Your audience is out there scrolling right now. Just saying.",
	"Version 1 of anything is just a login away.",
	"The best time to launch a campaign was yesterday. The second best time needs a token.",
	"Generated 0 assets today. The AI service is starting to take it personally.",
	"A campaign without assets is a name with a goal attached.",
	"Undo exists. Courage is cheap here. Log in.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("A D L O O M")

	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Campaigns, assets, and AI generation from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"adloom", "Open the dashboard (interactive TUI)"},
		{"adloom login <email>", "Authenticate against the auth service"},
		{"adloom logout", "Clear your saved session"},
		{"adloom --version", "Show version"},
		{"adloom help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, sub)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("Environment: ADLOOM_TOKEN, ADLOOM_DEBUG, ADLOOM_AUTH_URL and friends")
	fmt.Printf("\n  %s\n\n", env)
}

func printWelcome() {
	msg := welcomeLines[rand.Intn(len(welcomeLines))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("ADLOOM")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To start: adloom login <email>")

	fmt.Printf("\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
