// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command erctl is the operator CLI for ERApp: schema migrations, legal
// dataset imports and administrator provisioning.
package main

func main() {
	Execute()
}
