package metrics

import (
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		route    string
		status   int
		label    string
		duration time.Duration
	}{
		{name: "matched route", method: "GET", route: "/films/:id", status: 200, label: "/films/:id", duration: time.Millisecond},
		{name: "not found", method: "PUT", route: "/users", status: 404, label: "/users", duration: 2 * time.Millisecond},
		{name: "unmatched route", method: "GET", route: "", status: 404, label: "unmatched", duration: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestsTotal.WithLabelValues(tt.method, tt.label, strconv.Itoa(tt.status))
			before := testutil.ToFloat64(counter)

			RecordHTTPRequest(tt.method, tt.route, tt.status, tt.duration)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("expected counter to grow by 1, grew by %v", got)
			}
		})
	}
}

func TestRecordEvent(t *testing.T) {
	counter := DomainEventsTotal.WithLabelValues("LIKE_ADDED")
	before := testutil.ToFloat64(counter)

	RecordEvent("LIKE_ADDED")
	RecordEvent("LIKE_ADDED")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 events, got %v", got)
	}
}

func TestRecordCacheLookups(t *testing.T) {
	hits := PopularCacheLookupsTotal.WithLabelValues("hit")
	misses := PopularCacheLookupsTotal.WithLabelValues("miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheMiss()

	if got := testutil.ToFloat64(hits) - hitsBefore; got != 1 {
		t.Errorf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(misses) - missesBefore; got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
}
