package stats

import "testing"

func TestAddAndSnapshot(t *testing.T) {
	c := New()
	c.Add("sign/attempts", 1)
	c.Add("sign/attempts", 2)
	c.Add("sign/restarts", 1)

	snap := c.Snapshot()
	if snap["sign/attempts"] != 3 {
		t.Fatalf("sign/attempts = %d, want 3", snap["sign/attempts"])
	}
	if snap["sign/restarts"] != 1 {
		t.Fatalf("sign/restarts = %d, want 1", snap["sign/restarts"])
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Add("x", 1)
	snap := c.Snapshot()
	snap["x"] = 99
	if got := c.Snapshot()["x"]; got != 1 {
		t.Fatalf("mutating a snapshot affected the live counters: got %d", got)
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Add("x", 5)
	c.Reset()
	if got := c.Snapshot()["x"]; got != 0 {
		t.Fatalf("Reset did not clear counter: got %d", got)
	}
}
