package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))             // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))           // light grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

func printSuccess(text string) {
	fmt.Println(successStyle.Render(text))
}

func printError(text string) {
	fmt.Println(errorStyle.Render(text))
}

func printWarning(text string) {
	fmt.Println(warningStyle.Render(text))
}

func printInfo(text string) {
	fmt.Println(infoStyle.Render(text))
}

func printDetail(text string) {
	fmt.Println(detailStyle.Render(text))
}

func printHeader(text string) {
	fmt.Println(headerStyle.Render(text))
}
