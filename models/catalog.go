// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Item is a catalog item (product information record).
type Item struct {
	ID          string            `json:"id,omitempty"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	CategoryID  string            `json:"categoryId,omitempty"`
	Attributes  map[string]any    `json:"attributes,omitempty"`
	Localized   map[string]string `json:"localized,omitempty"`
	Status      string            `json:"status,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
	Description string            `json:"description,omitempty"`
}

// Category is a node of the catalog category tree.
type Category struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
	Position int    `json:"position,omitempty"`
}

// Attribute is a typed catalog attribute definition.
type Attribute struct {
	ID       string   `json:"id,omitempty"`
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// Role is a named permission set.
type Role struct {
	ID          string   `json:"id,omitempty"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

// Localization is a translated string for a locale.
type Localization struct {
	ID     string `json:"id,omitempty"`
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
}
