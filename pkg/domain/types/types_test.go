package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/availiq/availiq/pkg/domain/types"
)

func TestEmailAddressNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input types.EmailAddress
		want  types.EmailAddress
	}{
		{"lowercase unchanged", "lorenna@example.com", "lorenna@example.com"},
		{"uppercase folded", "Lorenna@Example.COM", "lorenna@example.com"},
		{"whitespace trimmed", "  daria@example.com ", "daria@example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, tc.input.Normalize()).Equal(tc.want)
		})
	}
}

func TestEmailAddressValidate(t *testing.T) {
	gt.NoError(t, types.EmailAddress("gwen@example.com").Validate())

	for _, bad := range []types.EmailAddress{"", "   ", "no-at-sign", "@example.com", "gwen@"} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", bad)
		}
	}
}

func TestPollIDValidate(t *testing.T) {
	gt.NoError(t, types.PollID("2025-04-07").Validate())

	for _, bad := range []types.PollID{"", "2025-4-7", "20250407", "2025/04/07"} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", bad)
		}
	}
}

func TestAvailabilityStatus(t *testing.T) {
	for _, s := range types.KnownStatuses() {
		gt.Bool(t, s.IsKnown()).True()
	}

	gt.Bool(t, types.StatusNoResponse.IsKnown()).False()
	gt.Bool(t, types.AvailabilityStatus("OOO_UNTIL_NOON").IsKnown()).False()

	// Unknown values survive round-tripping untouched
	raw := types.AvailabilityStatus("UNKNOWN")
	gt.Value(t, raw.String()).Equal("UNKNOWN")
}

func TestRunLabelValidate(t *testing.T) {
	for _, label := range []types.RunLabel{"9AM", "12PM", "reminder", "late_shift"} {
		gt.NoError(t, label.Validate())
	}

	for _, bad := range []types.RunLabel{"", "-leading", "has space"} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", bad)
		}
	}
}

func TestDispatchOutcome(t *testing.T) {
	out := types.SentOutcome("9AM")
	gt.Value(t, out.String()).Equal("SENT_9AM")
	gt.Bool(t, out.IsSent()).True()
	gt.Bool(t, types.DispatchOutcomeFailed.IsSent()).False()
}
