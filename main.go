/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/contestreplay/replay-api/cmd"

// @title           Contest Replay API
// @version         1.0.0
// @description     Replay recorded contest audio against Cabrillo logs
// @contact.name    API Support
// @contact.url     https://github.com/contestreplay/replay-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
