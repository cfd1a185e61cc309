package version

import (
	"fmt"
	"strings"
	"time"
)

// ProtocolVersion - версия формата команд и снапшотов раунда.
// Повышается при несовместимых изменениях pkg/api, хосты сверяют ее в /version.
const ProtocolVersion = 3

// Заполняются через -ldflags "-X hazard-server/internal/version.Version=..."
var (
	Version     = "dev"
	BuildDate   string // YYYY-MM-DD, UTC
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней с выхода первой версии движка раундов.
var roundEngineEpoch = time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)

const dateLayout = "2006-01-02"

// VersionInfo - то, что сервер отдает на /version и пишет в лог при старте.
type VersionInfo struct {
	Version    string `json:"version"`
	Protocol   int    `json:"protocol"`
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID считает номер сборки по BuildDate.
func CalculateBuildID() (int, error) {
	return daysSinceEpoch(BuildDate)
}

func daysSinceEpoch(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is not set")
	}

	built, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse build date %q: %w", date, err)
	}
	if built.Before(roundEngineEpoch) {
		return 0, fmt.Errorf("build date %s precedes %s", date, roundEngineEpoch.Format(dateLayout))
	}

	// Обе даты в UTC на полночь, деление нацело точное
	return int(built.Sub(roundEngineEpoch) / (24 * time.Hour)), nil
}

// Info собирает метаданные сборки. Ошибка расчета номера не фатальна.
func Info() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		Protocol:  ProtocolVersion,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для стартового лога.
func String() string {
	info := Info()

	var b strings.Builder
	fmt.Fprintf(&b, "hazard-server %s (protocol v%d)", info.Version, info.Protocol)
	if !info.Calculated {
		fmt.Fprintf(&b, ", build unknown: %s", info.Error)
		return b.String()
	}

	fmt.Fprintf(&b, ", build %d of %s", info.BuildID, info.BuildDate)
	if info.Commit != "" {
		fmt.Fprintf(&b, ", commit %s", shortCommit(info.Commit))
	}
	if info.Branch != "" {
		fmt.Fprintf(&b, " on %s", info.Branch)
	}
	if info.CI != "" {
		fmt.Fprintf(&b, " via %s", info.CI)
	} else {
		b.WriteString(", local build")
	}
	return b.String()
}

func shortCommit(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
