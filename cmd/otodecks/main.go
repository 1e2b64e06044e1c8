// SPDX-License-Identifier: EPL-2.0

// Command otodecks plays two decks through the system audio device and is
// driven by text commands on stdin.
package main

func main() {
	Execute()
}
