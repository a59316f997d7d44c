package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/256dpi/serve"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/repo"
)

// A Tester provides facilities to test the API.
type Tester struct {
	*coal.Tester

	// The repositories used by the server.
	Repos *repo.Repos

	// The notary used by the server.
	Notary *heat.Notary

	// The handler to be tested.
	Handler http.Handler

	// The header to be set on all requests.
	Header map[string]string

	reported []error
	mutex    sync.Mutex
}

// NewTester returns a new tester that serves the API using the provided
// store and payment bridge.
func NewTester(store *coal.Store, bridge *payment.Bridge) *Tester {
	// prepare tester
	t := &Tester{
		Tester: coal.NewTester(store, model.Collections()...),
		Repos:  repo.New(store),
		Notary: heat.NewNotary("nexus-test", heat.MustRandomSecret(32)),
		Header: make(map[string]string),
	}

	// ensure bridge
	if bridge == nil {
		bridge = payment.NewBridge(payment.Config{})
	}

	// create server
	t.Handler = NewServer(Options{
		Repos:    t.Repos,
		Notary:   t.Notary,
		Bridge:   bridge,
		Reporter: t.report,
	})

	return t
}

// Clean will remove all documents and reset the header map as well as the
// reported errors.
func (t *Tester) Clean() {
	// clean collections
	t.Tester.Clean()

	// reset header
	t.Header = make(map[string]string)

	// reset errors
	t.mutex.Lock()
	t.reported = nil
	t.mutex.Unlock()
}

// User will create a user with the specified email and role.
func (t *Tester) User(email string, role model.Role) *model.User {
	// create user
	user := &model.User{Email: email, Name: email, UserRole: role}
	_, err := t.Repos.Users.Ensure(context.Background(), user)
	if err != nil {
		panic(err)
	}

	return user
}

// Token will issue a credential for the specified email.
func (t *Tester) Token(email string) string {
	// issue token
	token, err := t.Notary.Issue(email)
	if err != nil {
		panic(err)
	}

	return token
}

// Login will set the authorization header to a credential for the specified
// email.
func (t *Tester) Login(email string) {
	t.Header["Authorization"] = "Bearer " + t.Token(email)
}

// Logout will remove the authorization header.
func (t *Tester) Logout() {
	delete(t.Header, "Authorization")
}

// Request will run the specified request against the handler and call the
// callback with the recorded response.
func (t *Tester) Request(method, path string, payload string, callback func(*httptest.ResponseRecorder)) {
	// prepare headers
	headers := map[string]string{}
	if payload != "" {
		headers["Content-Type"] = "application/json"
	}
	for key, value := range t.Header {
		headers[key] = value
	}

	// record request
	res := serve.Record(context.Background(), t.Handler, method, path, headers, payload)

	callback(res)
}

// Reported returns the errors passed to the reporter.
func (t *Tester) Reported() []error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]error(nil), t.reported...)
}

func (t *Tester) report(err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.reported = append(t.reported, err)
}
