package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/service"
)

// Commands perform backend requests only. Their results come back as messages
// and are applied to the controller on the update loop.

func fetchStats(ctx context.Context, backend service.AdminBackend) tea.Cmd {
	return func() tea.Msg {
		stats, err := backend.Stats(ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func runUpload(ctx context.Context, job *console.UploadJob) tea.Cmd {
	return func() tea.Msg {
		return uploadFinishedMsg{job: job, outcome: job.Run(ctx)}
	}
}

func runClear(ctx context.Context, job *console.ClearJob) tea.Cmd {
	return func() tea.Msg {
		return clearFinishedMsg{job: job, err: job.Run(ctx)}
	}
}

func runTransfer(ctx context.Context, job *console.TransferJob) tea.Cmd {
	return func() tea.Msg {
		return transferFinishedMsg{job: job, outcome: job.Run(ctx)}
	}
}

func fetchData(ctx context.Context, ctrl *console.Controller) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := ctrl.FetchData(ctx)
		return dataLoadedMsg{snapshot: snapshot, err: err}
	}
}

func expireStatus(seq uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
