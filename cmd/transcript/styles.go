package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	BulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingRight(1)
	TextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(2)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func title(format string, args ...any) {
	fmt.Println(TitleStyle.Render(fmt.Sprintf(format, args...)))
}

func step(format string, args ...any) {
	fmt.Println(BulletStyle.Render("├") + TextStyle.Render(fmt.Sprintf(format, args...)))
}

func detail(format string, args ...any) {
	fmt.Println(MutedStyle.Render(fmt.Sprintf(format, args...)))
}

func done(format string, args ...any) {
	fmt.Println(BulletStyle.Render("└") + SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func fail(format string, args ...any) {
	fmt.Fprintln(os.Stderr, BulletStyle.Render("└")+ErrorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
