// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sort"

	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/models"
)

// Collection paths on the backend.
const (
	PathItems         = "/items"
	PathCategories    = "/categories"
	PathAttributes    = "/attributes"
	PathRoles         = "/roles"
	PathLocalizations = "/localizations"
)

// Services groups the domain services of the console.
type Services struct {
	Auth AuthService

	Items         *Resource[models.Item]
	Categories    *Resource[models.Category]
	Attributes    *Resource[models.Attribute]
	Roles         *Resource[models.Role]
	Localizations *Resource[models.Localization]

	collections map[string]Collection
}

// NewServices builds every service on top of api.
func NewServices(api APIClient, session SessionStore, tracker VersionTracker, cfg config.API, log *logger.Logger) *Services {
	s := &Services{
		Auth:          NewAuthService(api, session, tracker, cfg, log),
		Items:         NewResource[models.Item](api, PathItems),
		Categories:    NewResource[models.Category](api, PathCategories),
		Attributes:    NewResource[models.Attribute](api, PathAttributes),
		Roles:         NewResource[models.Role](api, PathRoles),
		Localizations: NewResource[models.Localization](api, PathLocalizations),
	}

	s.collections = map[string]Collection{
		"items":         s.Items,
		"categories":    s.Categories,
		"attributes":    s.Attributes,
		"roles":         s.Roles,
		"localizations": s.Localizations,
	}
	return s
}

// Collection returns the collection registered under name ("items",
// "roles", ...).
func (s *Services) Collection(name string) (Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	return c, nil
}

// CollectionNames lists the registered collection names in order.
func (s *Services) CollectionNames() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
