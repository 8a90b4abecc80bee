package commands

import (
	"strings"

	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// CommandLogger returns a module-scoped logger for command handlers with the
// structured fields every command execution carries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
