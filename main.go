/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package main

import "github.com/deployfox/sfdelta/cmd"

func main() {
	cmd.Execute()
}
