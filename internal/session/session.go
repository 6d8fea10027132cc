package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rsharma/sellsathi/internal/ledger"
)

var (
	ErrMissingField   = errors.New("all registration fields are required")
	ErrNotRegistered  = errors.New("no business registered")
	ErrUnknownBizType = errors.New("unknown business type")
)

// BusinessTypes are the selectable categories on the registration form.
var BusinessTypes = []string{
	"Retail Store",
	"Online E-commerce",
	"Service Provider",
	"Manufacturing",
	"Other",
}

// Profile is the business identity captured at registration.
type Profile struct {
	OwnerName    string
	Email        string
	BusinessName string
	BusinessType string
}

// Session owns one ledger and the business profile for its lifetime.
// Logout resets both in a single step so no residual state survives.
type Session struct {
	ledger     *ledger.Service
	profile    Profile
	registered bool
}

func New(led *ledger.Service) *Session {
	return &Session{ledger: led}
}

func (s *Session) Register(p Profile) error {
	if strings.TrimSpace(p.OwnerName) == "" ||
		strings.TrimSpace(p.Email) == "" ||
		strings.TrimSpace(p.BusinessName) == "" ||
		strings.TrimSpace(p.BusinessType) == "" {
		return ErrMissingField
	}

	valid := false

	for _, t := range BusinessTypes {
		if p.BusinessType == t {
			valid = true
			break
		}
	}

	if !valid {
		return fmt.Errorf("%w: %q", ErrUnknownBizType, p.BusinessType)
	}

	s.profile = p
	s.registered = true

	return nil
}

func (s *Session) Profile() (Profile, bool) {
	return s.profile, s.registered
}

func (s *Session) Ledger() *ledger.Service {
	return s.ledger
}

// Reset logs the business out: the profile is cleared and every ledger
// collection is discarded together.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.ledger.Reset(ctx); err != nil {
		return err
	}

	s.profile = Profile{}
	s.registered = false

	return nil
}
