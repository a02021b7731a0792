package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/oantby/homebridge-api/internal/accessory"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/services"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const headerColor = "#1e7ba0"

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(headerColor))
var unreachableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d75f5f"))

type column struct {
	title string
	width int
}

var accessoryColumns = []column{
	{title: "AID", width: 6},
	{title: "Name", width: 24},
	{title: "Services", width: 24},
	{title: "State", width: 0},
}

func row(cols []column, cells []string, style lipgloss.Style) string {
	rendered := lo.Map(cols, func(c column, i int) string {
		s := style
		if c.width > 0 {
			s = s.Copy().Width(c.width)
		}
		return s.Render(cells[i])
	})
	return strings.TrimRight(strings.Join(rendered, " "), " ")
}

// Accessories renders a table of accessories.
func Accessories(accessories []*accessory.Accessory) string {
	lines := []string{
		row(accessoryColumns, lo.Map(accessoryColumns, func(c column, _ int) string { return c.title }), headerStyle),
	}

	for _, acc := range accessories {
		name, ok := acc.Name()
		if !ok {
			name = "-"
		}
		kinds := lo.Map(acc.Services(), func(svc *services.Service, _ int) string { return string(svc.Kind()) })
		lines = append(lines, row(accessoryColumns, []string{
			fmt.Sprint(acc.Aid()),
			name,
			strings.Join(kinds, ","),
			state(acc),
		}, lipgloss.NewStyle()))
	}

	return strings.Join(lines, "\n")
}

// state is a short summary of the interesting attributes.
func state(acc *accessory.Accessory) string {
	parts := lo.Map(acc.Services(), func(svc *services.Service, _ int) string {
		if svc.Kind() == services.Thermostat {
			return svc.String()
		}
		return strings.Join(lo.Map(svc.Attributes(), func(attr string, _ int) string {
			value, _ := svc.Value(attr)
			return fmt.Sprintf("%s=%v", attr, value)
		}), " ")
	})
	return strings.Join(parts, "; ")
}

func Unreachable(statuses []models.AccessoryStatus) string {
	if len(statuses) == 0 {
		return "all accessories reachable"
	}

	lines := lo.Map(statuses, func(s models.AccessoryStatus, _ int) string {
		when := "-"
		if s.LastUpdateTime != nil {
			when = s.LastUpdateTime.Format("2006/01/02 15:04:05")
		}
		return unreachableStyle.Render(fmt.Sprintf("%d %s: %s write %s at %s", s.Aid, s.Name, s.LastAttribute, s.LastWriteOutcome, when))
	})
	return strings.Join(lines, "\n")
}

func Outcome(name string, attribute string, outcome models.WriteOutcome) string {
	switch outcome {
	case models.WriteSucceeded:
		return fmt.Sprintf("%s: %s updated", name, attribute)
	case models.WriteNoTarget:
		return fmt.Sprintf("%s: no %s to set", name, attribute)
	default:
		return unreachableStyle.Render(fmt.Sprintf("%s: %s write %s", name, attribute, outcome))
	}
}

// YAML renders a snapshot of the accessories.
func YAML(summaries []models.AccessorySummary) (string, error) {
	out, err := yaml.Marshal(map[string]any{"accessories": summaries})
	if err != nil {
		return "", fmt.Errorf("error encoding accessories: %w", err)
	}
	return string(out), nil
}
