// Package main provides the gpt CLI for asking questions of a hosted
// chat-completion API while keeping the conversation between invocations.
package main

import "os"

func main() {
	os.Exit(NewApp().Run(os.Args))
}
