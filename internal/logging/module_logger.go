package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

const (
	rootModule     = "widgetkit"
	classesModule  = "widgetkit.classes"
	deliveryModule = "widgetkit.delivery"
	commandsModule = "widgetkit.commands"
)

const (
	fieldInstance = "instance"
	fieldClass    = "widget_class"
)

// ModuleLogger returns a logger scoped to module, falling back to a no-op
// logger when provider is nil or returns nothing. The module name is attached
// as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ClassesLogger returns the logger used by the class registry and bootstrap.
func ClassesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, classesModule)
}

// DeliveryLogger returns the logger used when composing widget payloads.
func DeliveryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, deliveryModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+name)
}

// WithWidgetContext annotates logger with the instance id and widget class
// being composed. Empty values are skipped.
func WithWidgetContext(logger interfaces.Logger, instanceID, className string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(instanceID); trimmed != "" {
		fields[fieldInstance] = trimmed
	}
	if trimmed := strings.TrimSpace(className); trimmed != "" {
		fields[fieldClass] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
