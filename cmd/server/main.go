// Command server runs the Tim Events API.
//
// @title Tim Events API
// @version 0.0.1
// @description Create events for B2B, networking and conferences. Users organize events, add speakers and manage venues.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import "timevents/cmd/server/cmd"

func main() {
	cmd.Execute()
}
