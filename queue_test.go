package parallax

import "testing"

func TestQueueJoinAssignsIndicesInOrder(t *testing.T) {
	q := queueRegistry{}
	for want := 0; want < 3; want++ {
		if got := q.join("panel"); got != want {
			t.Errorf("join #%d = %d", want, got)
		}
	}
	if got := q.join("other"); got != 0 {
		t.Errorf("first join of a new queue = %d, want 0", got)
	}
	if got := q.join("panel"); got != 3 {
		t.Errorf("join after another queue = %d, want 3", got)
	}
}

func TestQueueMayProceedFollowsPredecessor(t *testing.T) {
	q := queueRegistry{}
	q.join("panel")
	q.join("panel")
	q.join("panel")

	if !q.mayProceed("panel", 0) {
		t.Error("first member must always proceed")
	}
	if q.mayProceed("panel", 1) || q.mayProceed("panel", 2) {
		t.Error("later members must wait for their predecessor")
	}

	q.release("panel", 0)
	if !q.mayProceed("panel", 1) {
		t.Error("member 1 should proceed after member 0 is released")
	}
	if q.mayProceed("panel", 2) {
		t.Error("member 2 depends on member 1, not member 0")
	}
}

func TestQueueReleaseOutOfRangeIsIgnored(t *testing.T) {
	q := queueRegistry{}
	q.join("panel")
	q.release("panel", 5)
	q.release("missing", 0)
	if q.mayProceed("panel", 1) {
		t.Error("slot 0 should still be queued")
	}
}
