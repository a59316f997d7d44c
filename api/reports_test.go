package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/threadnexus/nexus/model"
)

type reportFixture struct {
	post    string
	comment string
	report  string
}

func createReport(t *testing.T, tester *Tester) reportFixture {
	tester.Login("joe@example.com")
	post := createPost(t, tester, "Hello", "go")
	comment := createComment(t, tester, post)
	createComment(t, tester, post)

	for i := 0; i < 2; i++ {
		tester.Request("PATCH", "/post/"+post+"?comment", "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, http.StatusOK, r.Code)
		})
	}

	var report string
	tester.Login("bob@example.com")
	tester.Request("POST", "/reports", fmt.Sprintf(`{"commentId":%q,"postId":%q,"comment":"Hi","feedback":"Spam","status":"deleted"}`, comment, post), func(r *httptest.ResponseRecorder) {
		assert.Equal(t, http.StatusOK, r.Code, r.Body.String())
		report = insertedID(t, r)
	})

	return reportFixture{post: post, comment: comment, report: report}
}

func TestCreateReport(t *testing.T) {
	withTester(t, nil, func(t *testing.T, tester *Tester) {
		tester.User("ann@example.com", model.Admin)
		createReport(t, tester)

		tester.Request("GET", "/reports", "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusForbidden, "forbidden")
		})

		tester.Login("ann@example.com")
		tester.Request("GET", "/reports", "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.Equal(t, int64(1), gjson.Get(r.Body.String(), "#").Int())
			assert.Equal(t, "pending", gjson.Get(r.Body.String(), "0.status").String())
			assert.Equal(t, "bob@example.com", gjson.Get(r.Body.String(), "0.reporter").String())
		})

		tester.Login("bob@example.com")
		tester.Request("POST", "/reports", `{"commentId":"foo"}`, func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusBadRequest, "invalid_argument")
		})
	})
}

func TestCreateReportForeignComment(t *testing.T) {
	withTester(t, nil, func(t *testing.T, tester *Tester) {
		fixture := createReport(t, tester)

		tester.Login("joe@example.com")
		other := createPost(t, tester, "Other", "go")

		tester.Login("bob@example.com")
		tester.Request("POST", "/reports", fmt.Sprintf(`{"commentId":%q,"postId":%q}`, fixture.comment, other), func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusBadRequest, "invalid_argument")
			assert.Contains(t, r.Body.String(), "comment does not belong to post")
		})
	})
}

func TestResolveReport(t *testing.T) {
	withTester(t, nil, func(t *testing.T, tester *Tester) {
		tester.User("ann@example.com", model.Admin)
		fixture := createReport(t, tester)

		// member
		tester.Request("PATCH", "/report/"+fixture.report+"?status=resolve", "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusForbidden, "forbidden")
		})

		tester.Login("ann@example.com")

		// mismatched reference
		tester.Request("PATCH", "/report/"+fixture.report+"?status=resolve&commentId="+fixture.post, "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusBadRequest, "invalid_argument")
		})

		// unknown action
		tester.Request("PATCH", "/report/"+fixture.report+"?status=delete", "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusBadRequest, "invalid_argument")
		})

		// resolve
		path := fmt.Sprintf("/report/%s?status=resolve&commentId=%s&postId=%s", fixture.report, fixture.comment, fixture.post)
		tester.Request("PATCH", path, "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, http.StatusOK, r.Code, r.Body.String())
			assert.Equal(t, int64(1), gjson.Get(r.Body.String(), "modifiedCount").Int())
		})

		tester.Request("GET", "/comments-count/"+fixture.post, "", func(r *httptest.ResponseRecorder) {
			assert.JSONEq(t, `{"count":1}`, r.Body.String())
		})
		tester.Request("GET", "/post/"+fixture.post, "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, int64(1), gjson.Get(r.Body.String(), "comments_count").Int())
		})
		tester.Request("GET", "/reports", "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, "deleted", gjson.Get(r.Body.String(), "0.status").String())
		})

		// second resolution is rejected without side effects
		tester.Request("PATCH", path, "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusConflict, "conflict")
		})
		tester.Request("GET", "/post/"+fixture.post, "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, int64(1), gjson.Get(r.Body.String(), "comments_count").Int())
		})

		// missing report
		tester.Request("PATCH", "/report/5c8f5c4f8b1e5a0001a1b2c3?status=resolve", "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusNotFound, "not_found")
		})
	})
}

func TestIgnoreReport(t *testing.T) {
	withTester(t, nil, func(t *testing.T, tester *Tester) {
		tester.User("ann@example.com", model.Admin)
		fixture := createReport(t, tester)

		tester.Login("ann@example.com")
		tester.Request("PATCH", "/report/"+fixture.report+"?status=ignore", "", func(r *httptest.ResponseRecorder) {
			assert.Equal(t, http.StatusOK, r.Code, r.Body.String())
		})

		tester.Request("GET", "/comments-count/"+fixture.post, "", func(r *httptest.ResponseRecorder) {
			assert.JSONEq(t, `{"count":2}`, r.Body.String())
		})

		tester.Request("PATCH", "/report/"+fixture.report+"?status=resolve", "", func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusConflict, "conflict")
		})
	})
}
