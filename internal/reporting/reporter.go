package reporting

import (
	"time"
)

// Level defines the nature of an update. Reporters use it to filter or
// style output; the engine never blocks on how an update is presented.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelSuccess Level = "SUCCESS"
	LevelWarn    Level = "WARN"
	LevelError   Level = "ERROR"
	// LevelCommand carries the runtime command about to be executed.
	// Reporters normally surface these only in verbose mode.
	LevelCommand Level = "COMMAND"
)

// String makes Level satisfy the fmt.Stringer interface.
func (l Level) String() string {
	return string(l)
}

// Update carries a single one-way notification from the engine to the
// presentation layer.
type Update struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

// ServiceState classifies a configured service against the runtime's
// container roster.
type ServiceState string

const (
	StateRunning    ServiceState = "Running"
	StateStopped    ServiceState = "Stopped"
	StateNotCreated ServiceState = "Not Created"
)

// StatusRow is one row of the status report: a configured service, its
// classification, and the container identifier and image backing it
// (falling back to the configured image when no container exists).
type StatusRow struct {
	Service     string
	State       ServiceState
	ContainerID string
	Image       string
}

// Reporter is the engine's one-way presentation boundary. Implementations
// must not block the caller; the engine fires updates and moves on.
type Reporter interface {
	Report(update Update)
	Table(rows []StatusRow)
}

// Convenience constructors so call sites stay terse.

func InfoUpdate(msg string) Update {
	return Update{Timestamp: time.Now(), Level: LevelInfo, Message: msg}
}

func SuccessUpdate(msg string) Update {
	return Update{Timestamp: time.Now(), Level: LevelSuccess, Message: msg}
}

func WarnUpdate(msg string) Update {
	return Update{Timestamp: time.Now(), Level: LevelWarn, Message: msg}
}

func ErrorUpdate(msg string) Update {
	return Update{Timestamp: time.Now(), Level: LevelError, Message: msg}
}

func CommandUpdate(msg string) Update {
	return Update{Timestamp: time.Now(), Level: LevelCommand, Message: msg}
}
