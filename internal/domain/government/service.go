// Package government models the catalogue of assisted government services
// (eCitizen, KRA, NTSA and similar) and customer requests for them.
package government

import (
	"context"
	"strings"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
)

// Service is a catalogue entry.
type Service struct {
	ID             string   `yaml:"-"`
	Code           string   `yaml:"code"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Category       string   `yaml:"category"`
	Fee            float64  `yaml:"fee"`
	ProcessingDays int      `yaml:"processing_days"`
	Requirements   []string `yaml:"requirements"`
	Active         bool     `yaml:"active"`
}

// Validate checks a catalogue entry before it is stored.
func (s *Service) Validate() error {
	s.Code = strings.ToLower(strings.TrimSpace(s.Code))
	if s.Code == "" {
		return errors.NewValidationError("service code is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.NewValidationError("service name is required")
	}
	if s.Fee < 0 {
		return errors.NewValidationError("fee cannot be negative")
	}
	if s.ID == "" {
		s.ID = id.New()
	}
	return nil
}

type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
	GetByCode(ctx context.Context, code string) (*Service, error)
	// Upsert inserts or updates by code.
	Upsert(ctx context.Context, s *Service) error
}

// Used by the seed command when no catalogue file is supplied.
func DefaultCatalogue() []*Service {
	return []*Service{
		{Code: "kra-pin", Name: "KRA PIN Registration", Description: "Register a new KRA PIN for an individual or business.", Category: "tax", Fee: 500, ProcessingDays: 1, Requirements: []string{"National ID", "Email address"}, Active: true},
		{Code: "kra-returns", Name: "KRA Tax Returns Filing", Description: "File annual income tax returns on iTax.", Category: "tax", Fee: 1000, ProcessingDays: 2, Requirements: []string{"KRA PIN", "iTax password", "P9 form"}, Active: true},
		{Code: "good-conduct", Name: "Certificate of Good Conduct", Description: "Apply for a police clearance certificate via eCitizen.", Category: "identity", Fee: 1050, ProcessingDays: 14, Requirements: []string{"National ID", "eCitizen account"}, Active: true},
		{Code: "business-name", Name: "Business Name Registration", Description: "Search and register a business name.", Category: "business", Fee: 1500, ProcessingDays: 3, Requirements: []string{"National ID", "KRA PIN", "Three proposed names"}, Active: true},
		{Code: "helb", Name: "HELB Application", Description: "Apply for HELB loans and clearance certificates.", Category: "education", Fee: 500, ProcessingDays: 2, Requirements: []string{"National ID", "Admission letter"}, Active: true},
		{Code: "ntsa-dl", Name: "Driving Licence Renewal", Description: "Renew a smart driving licence through NTSA TIMS.", Category: "transport", Fee: 800, ProcessingDays: 3, Requirements: []string{"National ID", "Current licence"}, Active: true},
	}
}
