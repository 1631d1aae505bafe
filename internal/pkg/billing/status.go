package billing

import (
	"strings"

	"github.com/medirate/medirate/app/models"
)

// normalizeStatus mirrors the provider's status vocabulary. The provider is
// the source of truth; unknown strings pass through lowercased rather than
// being remapped.
func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return models.SubscriptionStatusActive
	}
	return s
}

// entitlingStatuses are the provider statuses that grant dashboard access. A
// subscription in any other state (canceled, incomplete) is never resolved as
// the user's current subscription.
var entitlingStatuses = []string{
	models.SubscriptionStatusActive,
	models.SubscriptionStatusTrialing,
	models.SubscriptionStatusPastDue,
}

func isEntitlingStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, entitling := range entitlingStatuses {
		if s == entitling {
			return true
		}
	}
	return false
}
