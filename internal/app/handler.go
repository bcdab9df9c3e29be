package app

import (
	"context"
	"os"

	"github.com/kbaines/pounce/internal/ipc"
	"github.com/kbaines/pounce/internal/mode"
	"go.uber.org/zap"
)

// handleCommand serves one IPC request. Mode changes are posted onto the
// serialization queue and acknowledged immediately; the caller observes
// the result through a subsequent status command.
func (a *App) handleCommand(ctx context.Context, cmd ipc.Command) ipc.Response {
	resp := a.dispatch(ctx, cmd)
	if a.met != nil {
		a.met.IPCRequest(cmd.Action, resp.Code)
	}
	return resp
}

func (a *App) dispatch(ctx context.Context, cmd ipc.Command) ipc.Response {
	switch cmd.Action {
	case "status":
		return ipc.OK(ipc.StatusData{
			Mode:       a.ctrl.Current().String(),
			Version:    a.version,
			ConfigPath: a.cfgPath,
			PID:        os.Getpid(),
		})

	case "hints", "grid", "scroll", "idle":
		target, _ := mode.ParseMode(cmd.Action)
		return a.postToggle(target)

	case "hide", "show":
		if err := a.overlay.SetHidden(cmd.Action == "hide"); err != nil {
			return ipc.Fail(ipc.CodeActionFailed, err.Error())
		}
		return ipc.OK(nil)

	case "stop":
		a.Stop()
		return ipc.OK(nil)

	default:
		return ipc.Fail(ipc.CodeUnknownCommand, "unknown command: "+cmd.Action)
	}
}

func (a *App) postToggle(target mode.Mode) ipc.Response {
	posted := a.queue.Post(func(ctx context.Context) {
		if err := a.ctrl.Toggle(ctx, target); err != nil {
			a.logger.Warn("requested mode change failed",
				zap.Stringer("mode", target), zap.Error(err))
		}
	})
	if !posted {
		return ipc.Fail(ipc.CodeActionFailed, "command queue full")
	}
	return ipc.OK(nil)
}
