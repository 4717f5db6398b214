package rules

import (
	"strings"
	"testing"

	"github.com/rotaworks/rota/internal/models"
)

func TestFormatRuleShowsDriverNumber(t *testing.T) {
	label := "lates"
	r := models.TimingRule{
		ID:        7,
		DriverID:  3,
		ShiftType: &label,
		Start:     "15:00",
		End:       "23:00",
		Priority:  10,
	}

	line := formatRule(r, "D42")
	if !strings.Contains(line, "driver D42") {
		t.Errorf("expected line to carry the driver number, got %q", line)
	}
	if strings.Contains(line, "driver 3") {
		t.Errorf("line should not expose the internal driver id, got %q", line)
	}
	if !strings.Contains(line, "15:00-23:00") || !strings.Contains(line, "p10") {
		t.Errorf("unexpected line %q", line)
	}
}
