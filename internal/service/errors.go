// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrLogin            = errors.New("login failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyID          = errors.New("resource id is required")
	ErrUnknownResource  = errors.New("unknown resource")
)
