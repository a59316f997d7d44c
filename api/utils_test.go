package api

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/repo"
)

var lungoStore = coal.MustOpen(nil, "test-nexus-api")

func withTester(t *testing.T, bridge *payment.Bridge, fn func(*testing.T, *Tester)) {
	if uri := os.Getenv("NEXUS_TEST_MONGO"); uri != "" {
		t.Run("Mongo", func(t *testing.T) {
			tester := NewTester(coal.MustConnect(uri), bridge)
			tester.Clean()
			ensureIndexes(tester)
			fn(t, tester)
		})
	}

	t.Run("Lungo", func(t *testing.T) {
		tester := NewTester(lungoStore, bridge)
		tester.Clean()
		ensureIndexes(tester)
		fn(t, tester)
	})
}

func ensureIndexes(tester *Tester) {
	err := repo.Indexer().Ensure(tester.Store)
	if err != nil {
		panic(err)
	}
}

func assertError(t *testing.T, r *httptest.ResponseRecorder, status int, code string) {
	assert.Equal(t, status, r.Code, r.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", r.Header().Get("Content-Type"))
	assert.Equal(t, int64(status), gjson.Get(r.Body.String(), "error.status").Int(), r.Body.String())
	assert.Equal(t, code, gjson.Get(r.Body.String(), "error.code").String(), r.Body.String())
}

func insertedID(t *testing.T, r *httptest.ResponseRecorder) string {
	id := gjson.Get(r.Body.String(), "insertedId").String()
	assert.True(t, coal.IsHex(id), r.Body.String())
	return id
}
