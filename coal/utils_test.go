package coal

import (
	"os"
	"testing"
)

var lungoStore = MustOpen(nil, "test-nexus-coal")

func withTester(t *testing.T, fn func(*testing.T, *Tester)) {
	if uri := os.Getenv("NEXUS_TEST_MONGO"); uri != "" {
		t.Run("Mongo", func(t *testing.T) {
			tester := NewTester(MustConnect(uri), "items")
			tester.Clean()
			fn(t, tester)
		})
	}

	t.Run("Lungo", func(t *testing.T) {
		tester := NewTester(lungoStore, "items")
		tester.Clean()
		fn(t, tester)
	})
}
