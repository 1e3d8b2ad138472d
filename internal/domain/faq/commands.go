package faq

import (
	"fmt"
	"strings"
)

// FarewellMessage answers the exit command.
const FarewellMessage = "Obrigado por usar o Chatbot. Até logo!"

// Command is a control word recognized before matching.
type Command int

const (
	CommandNone Command = iota
	CommandExit
	CommandMenu
)

var (
	exitWords = map[string]struct{}{"sair": {}, "exit": {}, "tchau": {}}
	// "opções" can never equal a normalized input; it is kept so the accepted
	// vocabulary reads the same as the help text.
	menuWords = map[string]struct{}{"menu": {}, "opcoes": {}, "opções": {}, "listar": {}}
)

// DetectCommand checks a normalized input against the control words. Only
// exact matches count.
func DetectCommand(normalized string) Command {
	if _, ok := exitWords[normalized]; ok {
		return CommandExit
	}
	if _, ok := menuWords[normalized]; ok {
		return CommandMenu
	}
	return CommandNone
}

// RenderMenu formats the help listing, one "title — description" per line.
func RenderMenu(items []MenuItem) string {
	var b strings.Builder
	b.WriteString("\n=== MENU DE TÓPICOS ===\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, item.Title, item.Description)
	}
	b.WriteString("=======================\n")
	return b.String()
}
