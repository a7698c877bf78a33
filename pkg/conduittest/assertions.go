package conduittest

import (
	"testing"

	"github.com/civiclens/conduit-mock/pkg/requestlog"
)

func (s *Server) countCalls(route string, status int) int {
	return len(s.Requests(&requestlog.Filter{Route: route, Status: status}))
}

// AssertCalled asserts that a route was called at least once.
func (s *Server) AssertCalled(t testing.TB, route string) {
	t.Helper()

	if s.countCalls(route, 0) == 0 {
		t.Errorf("expected %s to be called, but it was not called", route)
	}
}

// AssertCalledTimes asserts that a route was called exactly n times.
func (s *Server) AssertCalledTimes(t testing.TB, route string, times int) {
	t.Helper()

	if count := s.countCalls(route, 0); count != times {
		t.Errorf("expected %s to be called %d times, but was called %d times", route, times, count)
	}
}

// AssertNotCalled asserts that a route was not called.
func (s *Server) AssertNotCalled(t testing.TB, route string) {
	t.Helper()

	if count := s.countCalls(route, 0); count > 0 {
		t.Errorf("expected %s to not be called, but it was called %d times", route, count)
	}
}

// AssertStatus asserts that a route answered with status at least once.
func (s *Server) AssertStatus(t testing.TB, route string, status int) {
	t.Helper()

	if s.countCalls(route, status) == 0 {
		var got []int
		for _, e := range s.Requests(&requestlog.Filter{Route: route}) {
			got = append(got, e.Status)
		}
		t.Errorf("expected %s to answer %d, got statuses %v", route, status, got)
	}
}
