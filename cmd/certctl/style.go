package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/certchain/certificate-system/internal/session"
	"github.com/certchain/certificate-system/pkg/certclient"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(14)
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F87")).
			Padding(0, 1)
	toastTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))

	statusStyles = map[string]lipgloss.Style{
		certclient.StatusPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		certclient.StatusSigned:   lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
		certclient.StatusApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
	}
	validStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	invalidStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))
)

// toastNotifier renders session notifications as a bordered box.
type toastNotifier struct {
	w io.Writer
}

func (t toastNotifier) Notify(n session.Notification) {
	body := toastTitleStyle.Render(n.Title) + "\n" + n.Message
	fmt.Fprintln(t.w, toastStyle.Render(body))
}

func renderStatus(status string) string {
	if st, ok := statusStyles[status]; ok {
		return st.Render(status)
	}
	return status
}

func renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + value
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
