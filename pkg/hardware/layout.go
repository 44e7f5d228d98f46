package hardware

import (
	"fmt"
	"strings"
	"time"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
)

const (
	LCDRows    = 2
	LCDColumns = 16

	maxClock = 99*time.Hour + 59*time.Minute
)

// FormatStatus lays a status out as two 16 character lines:
//
//	T:22.5C     D-10
//	Mix 00:25 C:OK
func FormatStatus(status entities.Status) [LCDRows]string {
	if status.Completed {
		return [LCDRows]string{pad("Maceration"), pad("Completed!")}
	}
	if status.Interrupted {
		return [LCDRows]string{pad("Maceration"), pad("Stopped")}
	}

	temperature := "T:--.-C"
	if status.HasReading {
		temperature = fmt.Sprintf("T:%.1fC", status.Temperature)
	}
	if status.SensorFault {
		temperature += "!"
	}
	days := fmt.Sprintf("D-%d", status.DaysRemaining)
	first := temperature + strings.Repeat(" ", atLeast(1, LCDColumns-len(temperature)-len(days))) + days

	mode := "Nxt"
	if status.Mixing {
		mode = "Mix"
	}
	cloud := status.CloudStatus
	if cloud == "" {
		cloud = entities.CloudUnknown
	}
	second := fmt.Sprintf("%s %s C:%s", mode, formatClock(status.NextToggle), cloud)

	return [LCDRows]string{pad(first), pad(second)}
}

// formatClock shows MM:SS below 100 minutes and HHhMM above.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	if d < 100*time.Minute {
		return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
	}
	if d > maxClock {
		d = maxClock
	}
	return fmt.Sprintf("%02dh%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

func pad(line string) string {
	if len(line) > LCDColumns {
		return line[:LCDColumns]
	}
	return line + strings.Repeat(" ", LCDColumns-len(line))
}

func atLeast(a, b int) int {
	if a > b {
		return a
	}
	return b
}
