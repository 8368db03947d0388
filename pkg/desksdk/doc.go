/*
Package desksdk is a client for the filedesk admin console API.

An SDKClient covers the public credential endpoints:

	client := desksdk.NewSDKClient("https://desk.example.com")
	err := client.Register(ctx, desksdk.RegisterRequest{...})
	session, err := client.Login(ctx, "ada@example.com", "secret")

A Session carries the access token returned by Login and covers the
authenticated /v1 endpoints:

	tree, err := session.GetTree(ctx)
	folder, err := session.CreateFolder(ctx, "Reports", nil)

Failed calls return *APIError. A lockout is reported with Code
ErrorCodeLockedOut and the time left in RemainingTime.
*/
package desksdk
