package chat

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aryanpatel3011/localseva_be/internal/models"
)

var (
	provider1 = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	provider2 = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	service1  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	service2  = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
)

func msg(provider, service uuid.UUID, ts int64, body string) models.Message {
	return models.Message{
		ID:         uuid.New(),
		ProviderID: provider,
		ServiceID:  service,
		Body:       body,
		CreatedAt:  time.Unix(ts, 0),
	}
}

func TestAggregateLatestWinsPerKey(t *testing.T) {
	newer := msg(provider1, service1, 10, "newer")
	older := msg(provider1, service1, 5, "older")

	for name, feeds := range map[string][][]models.Message{
		"newer first": {{newer}, {older}},
		"older first": {{older}, {newer}},
		"same feed":   {{older, newer}},
	} {
		t.Run(name, func(t *testing.T) {
			got := Aggregate(feeds...)
			if len(got) != 1 {
				t.Fatalf("expected 1 conversation, got %d", len(got))
			}
			if got[0].Latest.Body != "newer" {
				t.Errorf("latest message = %q, want %q", got[0].Latest.Body, "newer")
			}
			if got[0].ProviderID != provider1.String() || got[0].ServiceID != service1.String() {
				t.Errorf("unexpected key: %s", got[0].Key())
			}
		})
	}
}

func TestAggregateCommutativeOverInterleavings(t *testing.T) {
	sent := []models.Message{
		msg(provider1, service1, 10, "a"),
		msg(provider2, service2, 7, "b"),
	}
	received := []models.Message{
		msg(provider1, service1, 12, "c"),
		msg(provider1, service2, 3, "d"),
	}

	forward := Aggregate(sent, received)
	backward := Aggregate(received, sent)

	if len(forward) != len(backward) {
		t.Fatalf("delivery order changed conversation count: %d vs %d", len(forward), len(backward))
	}
	for i := range forward {
		if forward[i].Key() != backward[i].Key() {
			t.Errorf("conversation %d key mismatch: %s vs %s", i, forward[i].Key(), backward[i].Key())
		}
		if forward[i].Latest.ID != backward[i].Latest.ID {
			t.Errorf("conversation %s latest mismatch across delivery orders", forward[i].Key())
		}
	}
}

func TestAggregateDistinctKeys(t *testing.T) {
	feeds := [][]models.Message{
		{msg(provider1, service1, 1, "a")},
		{msg(provider1, service2, 2, "b"), msg(provider2, service1, 3, "c")},
	}

	got := Aggregate(feeds...)

	if len(got) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(got))
	}
	// sorted newest first
	for i := 1; i < len(got); i++ {
		if got[i].Latest.CreatedAt.After(got[i-1].Latest.CreatedAt) {
			t.Errorf("conversations not sorted newest first at index %d", i)
		}
	}
}

func TestAggregateEqualTimestampsAreOrderIndependent(t *testing.T) {
	a := msg(provider1, service1, 10, "a")
	b := msg(provider1, service1, 10, "b")

	forward := Aggregate([]models.Message{a}, []models.Message{b})
	backward := Aggregate([]models.Message{b}, []models.Message{a})

	if forward[0].Latest.ID != backward[0].Latest.ID {
		t.Errorf("equal-timestamp winner depends on delivery order")
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, nil)
	if len(got) != 0 {
		t.Errorf("expected no conversations, got %d", len(got))
	}
}
