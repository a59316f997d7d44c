package repo

import (
	"os"
	"testing"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

var lungoStore = coal.MustOpen(nil, "test-nexus-repo")

var author = model.Author{Name: "Joe", Email: "joe@example.com"}

func withRepos(t *testing.T, fn func(*testing.T, *coal.Tester, *Repos)) {
	if uri := os.Getenv("NEXUS_TEST_MONGO"); uri != "" {
		t.Run("Mongo", func(t *testing.T) {
			tester := coal.NewTester(coal.MustConnect(uri), model.Collections()...)
			tester.Clean()
			ensureIndexes(tester)
			fn(t, tester, New(tester.Store))
		})
	}

	t.Run("Lungo", func(t *testing.T) {
		tester := coal.NewTester(lungoStore, model.Collections()...)
		tester.Clean()
		ensureIndexes(tester)
		fn(t, tester, New(tester.Store))
	})
}

func ensureIndexes(tester *coal.Tester) {
	err := Indexer().Ensure(tester.Store)
	if err != nil {
		panic(err)
	}
}
