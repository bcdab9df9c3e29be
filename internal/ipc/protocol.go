package ipc

import (
	"os"
	"path/filepath"
	"time"
)

// ProtocolVersion gates command compatibility. Bump on breaking changes.
const ProtocolVersion = "1"

// SocketName is the default socket file name under the temp directory.
const SocketName = "pounce.sock"

// Timeouts for the single request/response exchange.
const (
	DialTimeout  = 2 * time.Second
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 5 * time.Second
)

// Response codes.
const (
	CodeOK              = "OK"
	CodeUnknownCommand  = "ERR_UNKNOWN_COMMAND"
	CodeNotRunning      = "ERR_NOT_RUNNING"
	CodeInvalidInput    = "ERR_INVALID_INPUT"
	CodeActionFailed    = "ERR_ACTION_FAILED"
	CodeVersionMismatch = "ERR_VERSION_MISMATCH"
)

// Command is one request from the CLI.
type Command struct {
	Version string   `json:"version"`
	ID      string   `json:"id,omitempty"`
	Action  string   `json:"action"`
	Args    []string `json:"args,omitempty"`
}

// Response is the daemon's reply. ID echoes the command's correlation ID.
type Response struct {
	Version string `json:"version"`
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// StatusData is the payload of the "status" command.
type StatusData struct {
	Mode       string `json:"mode"`
	Version    string `json:"version"`
	ConfigPath string `json:"config_path"`
	PID        int    `json:"pid"`
}

// OK builds a success response.
func OK(data any) Response {
	return Response{Version: ProtocolVersion, Success: true, Code: CodeOK, Data: data}
}

// Fail builds an error response.
func Fail(code, message string) Response {
	return Response{Version: ProtocolVersion, Success: false, Code: code, Message: message}
}

// DefaultSocketPath places the socket in the user's temp directory.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), SocketName)
}
