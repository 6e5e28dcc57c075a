// Command helpdesk runs the interactive support ticket desk.
package main

import "github.com/jvs-project/helpdesk/internal/cli"

func main() {
	cli.Execute()
}
