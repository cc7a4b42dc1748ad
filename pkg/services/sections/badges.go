package sections

import "github.com/imd-care/care-reports/pkg/models/domain"

type badgeTable struct {
	tones    map[string]domain.BadgeTone
	fallback domain.BadgeTone
}

func (b badgeTable) badge(value string) *domain.Badge {
	if value == "" {
		return nil
	}
	tone, ok := b.tones[value]
	if !ok {
		tone = b.fallback
	}
	return &domain.Badge{Text: value, Tone: tone}
}

var (
	urgencyBadges = badgeTable{
		tones: map[string]domain.BadgeTone{
			"emergency": domain.BadgeToneDanger,
			"urgent":    domain.BadgeToneWarning,
		},
		fallback: domain.BadgeToneSuccess,
	}

	appointmentTypeBadges = badgeTable{
		tones: map[string]domain.BadgeTone{
			"urgent": domain.BadgeToneDanger,
		},
		fallback: domain.BadgeToneInfo,
	}

	appointmentStatusBadges = badgeTable{
		tones: map[string]domain.BadgeTone{
			"pending":   domain.BadgeToneWarning,
			"completed": domain.BadgeToneSuccess,
		},
		fallback: domain.BadgeToneDanger,
	}

	admissionStatusBadges = badgeTable{
		tones: map[string]domain.BadgeTone{
			"active": domain.BadgeToneSuccess,
		},
		fallback: domain.BadgeToneNeutral,
	}

	safetyTypeBadges = badgeTable{
		tones: map[string]domain.BadgeTone{
			"Emergency":   domain.BadgeToneDanger,
			"Observation": domain.BadgeToneWarning,
		},
		fallback: domain.BadgeToneSuccess,
	}
)

func UrgencyBadge(urgency string) *domain.Badge {
	return urgencyBadges.badge(urgency)
}

func AppointmentTypeBadge(appointmentType string) *domain.Badge {
	return appointmentTypeBadges.badge(appointmentType)
}

func AppointmentStatusBadge(status string) *domain.Badge {
	return appointmentStatusBadges.badge(status)
}

func AdmissionStatusBadge(status string) *domain.Badge {
	return admissionStatusBadges.badge(status)
}

func SafetyTypeBadge(safetyType string) *domain.Badge {
	return safetyTypeBadges.badge(safetyType)
}
