// Package trends queries google trends through the fetchComponent endpoint.
//
//	session, err := trends.NewSession(trends.SessionOptions{
//		Email:    "someone@gmail.com",
//		Password: "...",
//	})
//	...
//	_, err = session.Authenticate(ctx)
//	...
//	res, err := trends.NewRequest(session).
//		AddTerm("golang").
//		AddTerm("rust").
//		TopQueries().
//		Send(ctx)
//	...
//	terms, err := res.Terms()
//
// Responses are JSONP wrapped visualization tables, Response.Decode turns them into a Table.
package trends
