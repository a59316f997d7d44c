package api

// Routes returns the routing table of the server.
func (s *Server) Routes() []Route {
	auth := []Gate{Authenticate(s.notary)}
	admin := []Gate{Authenticate(s.notary), RequireAdmin()}

	return []Route{
		{Method: "GET", Path: "/{$}", Handler: s.status},
		{Method: "POST", Path: "/jwt", Handler: s.issueToken},

		{Method: "GET", Path: "/posts", Handler: s.listPosts},
		{Method: "GET", Path: "/posts-count", Handler: s.countPosts},
		{Method: "POST", Path: "/posts", Gates: auth, Handler: s.createPost},
		{Method: "GET", Path: "/post/{id}", Handler: s.getPost},
		{Method: "PATCH", Path: "/post/{id}", Gates: auth, Handler: s.bumpPost},
		{Method: "DELETE", Path: "/post/{id}", Gates: auth, Handler: s.deletePost},
		{Method: "GET", Path: "/sort", Handler: s.sortPosts},

		{Method: "GET", Path: "/comments", Handler: s.listComments},
		{Method: "POST", Path: "/comments", Gates: auth, Handler: s.createComment},
		{Method: "GET", Path: "/comments/{postId}", Handler: s.postComments},
		{Method: "GET", Path: "/comments-count/{postId}", Handler: s.countComments},

		{Method: "GET", Path: "/reports", Gates: admin, Handler: s.listReports},
		{Method: "POST", Path: "/reports", Gates: auth, Handler: s.createReport},
		{Method: "PATCH", Path: "/report/{id}", Gates: admin, Handler: s.moderateReport},

		{Method: "GET", Path: "/users", Gates: admin, Handler: s.listUsers},
		{Method: "GET", Path: "/users-count", Gates: admin, Handler: s.countUsers},
		{Method: "POST", Path: "/users", Handler: s.createUser},
		{Method: "GET", Path: "/user/{email}", Handler: s.getUser},
		{Method: "PATCH", Path: "/user/{email}", Gates: auth, Handler: s.patchUser},

		{Method: "GET", Path: "/announcements", Handler: s.listAnnouncements},
		{Method: "POST", Path: "/announcements", Gates: admin, Handler: s.createAnnouncement},
		{Method: "GET", Path: "/announcements-count", Handler: s.countAnnouncements},

		{Method: "GET", Path: "/tags", Handler: s.listTags},
		{Method: "POST", Path: "/tags", Gates: admin, Handler: s.createTag},

		{Method: "POST", Path: "/create-payment-intent", Gates: auth, Handler: s.createPaymentIntent},
	}
}

type count struct {
	Count int64 `json:"count"`
}
