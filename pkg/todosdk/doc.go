// Package todosdk is a Go client for the todo HTTP API.
//
// SDKClient covers the unauthenticated calls (register, login, health) and
// hands back a Session bound to the x-auth token the server issued:
//
//	client := todosdk.NewSDKClient("http://localhost:8080")
//	sess, err := client.Login(ctx, "alice@x.com", "secret1")
//	if err != nil {
//		return err
//	}
//	todo, err := sess.CreateTodo(ctx, "buy milk")
//
// The wire types in this package are also what the server encodes, so the
// two cannot drift apart. Failed calls return *APIError.
package todosdk
