package chat

import (
	"sort"

	"github.com/aryanpatel3011/localseva_be/internal/models"
)

// Conversation is derived, never persisted: one entry per
// (provider, service) pair a user has exchanged messages over, carrying
// only the latest message.
type Conversation struct {
	ProviderID string         `json:"provider_id"`
	ServiceID  string         `json:"service_id"`
	Latest     models.Message `json:"latest_message"`
}

// Key identifies a conversation.
func (c Conversation) Key() string {
	return c.ProviderID + "-" + c.ServiceID
}

// Aggregate folds any number of message feeds into the latest-message
// map. The sent and received feeds carry no cross-feed ordering
// guarantee, so a strictly greater timestamp wins regardless of which
// feed a message arrived on; equal timestamps fall back to the message
// id so the result is independent of delivery order. Output is sorted
// newest conversation first.
func Aggregate(feeds ...[]models.Message) []Conversation {
	byKey := make(map[string]models.Message)

	for _, feed := range feeds {
		for _, msg := range feed {
			key := msg.ProviderID.String() + "-" + msg.ServiceID.String()
			stored, ok := byKey[key]
			if !ok || newer(msg, stored) {
				byKey[key] = msg
			}
		}
	}

	out := make([]Conversation, 0, len(byKey))
	for _, msg := range byKey {
		out = append(out, Conversation{
			ProviderID: msg.ProviderID.String(),
			ServiceID:  msg.ServiceID.String(),
			Latest:     msg,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Latest.CreatedAt.Equal(out[j].Latest.CreatedAt) {
			return out[i].Latest.CreatedAt.After(out[j].Latest.CreatedAt)
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

func newer(a, b models.Message) bool {
	if a.CreatedAt.After(b.CreatedAt) {
		return true
	}
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID.String() > b.ID.String()
	}
	return false
}
