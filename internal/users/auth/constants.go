// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/erapp/internal/platform/constants"

// # Authentication Constraints

const (
	// AccessTokenTTL is the fixed lifetime of a bearer token. There is no
	// refresh flow; clients log in again after expiry.
	AccessTokenTTL = constants.AccessTokenTTL

	// MinPasswordLength is enforced at registration only.
	MinPasswordLength = 6

	// MaxPasswordLength matches bcrypt's 72-byte input limit.
	MaxPasswordLength = 72

	// MaxNameLength bounds the display name.
	MaxNameLength = 100
)
