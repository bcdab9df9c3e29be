package ipc

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

func startServer(t *testing.T, handler Handler) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pounce.sock")
	srv, err := NewServer(path, handler, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	srv.Start(context.Background())
	t.Cleanup(srv.Stop)
	return srv, path
}

func TestRoundTrip(t *testing.T) {
	_, path := startServer(t, func(_ context.Context, cmd Command) Response {
		if cmd.Action != "status" {
			return Fail(CodeUnknownCommand, "unknown action "+cmd.Action)
		}
		return OK(StatusData{Mode: "idle", PID: 123})
	})

	resp, err := NewClient(path).Do("status")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Code != CodeOK {
		t.Fatalf("resp = %+v", resp)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["mode"] != "idle" {
		t.Fatalf("data = %#v", resp.Data)
	}
}

func TestCorrelationIDEchoed(t *testing.T) {
	_, path := startServer(t, func(context.Context, Command) Response { return OK(nil) })

	resp, err := NewClient(path).Send(Command{Action: "noop", ID: "abc-123"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ID != "abc-123" {
		t.Fatalf("resp.ID = %q", resp.ID)
	}
}

func TestUnknownCommandCode(t *testing.T) {
	_, path := startServer(t, func(_ context.Context, cmd Command) Response {
		return Fail(CodeUnknownCommand, "nope")
	})

	resp, err := NewClient(path).Do("warp-drive")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Code != CodeUnknownCommand {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestVersionMismatchRejected(t *testing.T) {
	_, path := startServer(t, func(context.Context, Command) Response { return OK(nil) })

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := json.NewEncoder(conn).Encode(Command{Version: "99", Action: "status"}); err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Code != CodeVersionMismatch {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestMalformedPayload(t *testing.T) {
	_, path := startServer(t, func(context.Context, Command) Response { return OK(nil) })

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("{not json\n")); err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Code != CodeInvalidInput {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestClientAgainstNoDaemon(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "nobody.sock"))
	if _, err := c.Do("status"); !perr.HasCode(err, perr.CodeIPCFailed) {
		t.Fatalf("err = %v, want IPC_FAILED", err)
	}
}

func TestStaleSocketReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pounce.sock")

	first, err := NewServer(path, func(context.Context, Command) Response { return OK(nil) }, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	// Simulate a crashed daemon: listener gone, socket file left behind.
	first.listener.Close()

	second, err := NewServer(path, func(context.Context, Command) Response { return OK(nil) }, zap.NewNop())
	if err != nil {
		t.Fatalf("stale socket not replaced: %v", err)
	}
	second.Start(context.Background())
	defer second.Stop()

	if _, err := NewClient(path).Do("status"); err != nil {
		t.Fatal(err)
	}
}
