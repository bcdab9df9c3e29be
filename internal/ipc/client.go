package ipc

import (
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/kbaines/pounce/internal/perr"
)

// Client sends one command per connection, the way short-lived CLI
// invocations use the socket.
type Client struct {
	path string
}

// NewClient targets the socket at path.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Send dials the daemon, writes cmd, and reads the reply. A connection
// failure maps to ERR_NOT_RUNNING so callers can print a useful message.
func (c *Client) Send(cmd Command) (Response, error) {
	conn, err := net.DialTimeout("unix", c.path, DialTimeout)
	if err != nil {
		return Response{}, perr.Wrap(perr.CodeIPCFailed, "daemon not reachable", err)
	}
	defer conn.Close()

	cmd.Version = ProtocolVersion
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return Response{}, perr.Wrap(perr.CodeIPCFailed, "send command", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, perr.Wrap(perr.CodeIPCFailed, "read response", err)
	}
	if resp.ID != "" && resp.ID != cmd.ID {
		return Response{}, perr.Newf(perr.CodeIPCFailed,
			"response correlation mismatch: sent %s, got %s", cmd.ID, resp.ID)
	}
	return resp, nil
}

// Do is shorthand for Send with just an action and args.
func (c *Client) Do(action string, args ...string) (Response, error) {
	return c.Send(Command{Action: action, Args: args})
}
