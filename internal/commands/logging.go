package commands

import (
	"strings"

	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

const commandModuleRoot = "lnkmx.commands"

// CommandLogger returns the logger for the command module (for example
// "lnkmx.commands.pages") annotated with component fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
