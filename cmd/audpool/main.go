// SPDX-License-Identifier: EPL-2.0

// Command audpool plays or renders the sounds listed in a config file.
package main

func main() {
	Execute()
}
