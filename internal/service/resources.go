// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-console-client/internal/apiclient"
	"github.com/MKhiriev/go-console-client/models"
)

// Resource is typed CRUD access to one backend collection.
type Resource[T any] struct {
	api  APIClient
	path string
}

// NewResource returns a resource rooted at path, e.g. "/items".
func NewResource[T any](api APIClient, path string) *Resource[T] {
	return &Resource[T]{api: api, path: "/" + strings.Trim(path, "/")}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

// List returns one page of the collection.
func (r *Resource[T]) List(ctx context.Context, params models.ListParams) (models.Page[T], error) {
	var page models.Page[T]

	resp, err := r.api.Request(ctx, http.MethodGet, r.path, nil, apiclient.WithQuery(params.Query()))
	if err != nil {
		return page, fmt.Errorf("list %s: %w", r.path, err)
	}
	if err = resp.Decode(&page); err != nil {
		return page, fmt.Errorf("list %s: %w", r.path, err)
	}
	return page, nil
}

// Get returns the element with the given id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return r.do(ctx, http.MethodGet, id, nil)
}

// Create posts v to the collection and returns the stored element.
func (r *Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var out T

	resp, err := r.api.Request(ctx, http.MethodPost, r.path, v)
	if err != nil {
		return out, fmt.Errorf("create %s: %w", r.path, err)
	}
	if err = resp.Decode(&out); err != nil {
		return out, fmt.Errorf("create %s: %w", r.path, err)
	}
	return out, nil
}

// Update replaces the element with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	return r.do(ctx, http.MethodPut, id, v)
}

// Delete removes the element with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, err := r.api.Request(ctx, http.MethodDelete, r.itemPath(id), nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.itemPath(id), err)
	}
	return nil
}

// ListAny implements [Collection].
func (r *Resource[T]) ListAny(ctx context.Context, params models.ListParams) (any, error) {
	return r.List(ctx, params)
}

// GetAny implements [Collection].
func (r *Resource[T]) GetAny(ctx context.Context, id string) (any, error) {
	return r.Get(ctx, id)
}

func (r *Resource[T]) do(ctx context.Context, method, id string, body any) (T, error) {
	var out T
	if id == "" {
		return out, ErrEmptyID
	}

	path := r.itemPath(id)
	resp, err := r.api.Request(ctx, method, path, body)
	if err != nil {
		return out, fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	if err = resp.Decode(&out); err != nil {
		return out, fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	return out, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
