package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/admin"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// DefaultBrand is used when a request names no brand.
const DefaultBrand = "Pinacle888"

// Section names accepted by Add and Update.
const (
	SectionPurposes         = "purposes"
	SectionDocumentTypes    = "documentTypes"
	SectionBlockingRules    = "blockingRules"
	SectionCancelReasons    = "cancelReasons"
	SectionNotifications    = "notifications"
	SectionVolunteerUploads = "volunteerUploads"
)

var (
	ErrDuplicate    = errors.New("duplicate name")
	ErrInvalid      = errors.New("invalid record")
	ErrNotFound     = errors.New("record not found")
	ErrUnknownBrand = errors.New("unknown brand")
	ErrUnsupported  = errors.New("operation not supported for section")
)

// NewRecord is the input for adding a record. Fields a section does not use are ignored.
type NewRecord struct {
	Name    string          `json:"name"`
	Purpose string          `json:"purpose,omitempty"`
	Status  domain.Status   `json:"status,omitempty"`
	Flags   map[string]bool `json:"flags,omitempty"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Status  *domain.Status  `json:"status,omitempty"`
	Purpose *string         `json:"purpose,omitempty"`
	Flags   map[string]bool `json:"flags,omitempty"`
	Checked *bool           `json:"checked,omitempty"`
}

// Registry holds one admin catalog per brand. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	catalogs map[string]*domain.Catalog
	brands   []string
	logger   *slog.Logger
	newID    func() string
}

// NewRegistry seeds every brand with the default catalog. With no brands, DefaultBrand is used.
func NewRegistry(brands []string, logger *slog.Logger) *Registry {
	r := &Registry{
		catalogs: make(map[string]*domain.Catalog, len(brands)),
		logger:   logger,
		newID:    uuid.NewString,
	}
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b == "" || r.catalogs[b] != nil {
			continue
		}
		c := domain.DefaultCatalog(b)
		r.catalogs[b] = &c
		r.brands = append(r.brands, b)
	}
	if len(r.brands) == 0 {
		c := domain.DefaultCatalog(DefaultBrand)
		r.catalogs[DefaultBrand] = &c
		r.brands = []string{DefaultBrand}
	}
	return r
}

// Brands lists the configured brands in configuration order.
func (r *Registry) Brands() []string {
	return append([]string(nil), r.brands...)
}

// Catalog returns a copy of a brand's catalog.
func (r *Registry) Catalog(brand string) (domain.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, err := r.lookup(brand)
	if err != nil {
		return domain.Catalog{}, err
	}
	return c.Clone(), nil
}

// Add creates a record in section and returns its id. New records are listed first.
func (r *Registry) Add(brand, section string, rec NewRecord) (string, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalid)
	}
	status := rec.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return "", fmt.Errorf("%w: status %q", ErrInvalid, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(brand)
	if err != nil {
		return "", err
	}

	id := r.newID()
	switch section {
	case SectionDocumentTypes:
		purpose := rec.Purpose
		if purpose == "" {
			purpose = domain.PurposeCodes[0]
		}
		if !slices.Contains(domain.PurposeCodes, purpose) {
			return "", fmt.Errorf("%w: purpose %q", ErrInvalid, purpose)
		}
		for _, d := range c.DocumentTypes {
			if strings.EqualFold(d.DocumentType, name) {
				return "", fmt.Errorf("%w: %s", ErrDuplicate, name)
			}
		}
		c.DocumentTypes = slices.Insert(c.DocumentTypes, 0, domain.DocumentType{ID: id, DocumentType: name, Purpose: purpose, Status: status})
	case SectionBlockingRules:
		flags := domain.NewFlags(false)
		if err := mergeFlags(flags, rec.Flags); err != nil {
			return "", err
		}
		for _, b := range c.BlockingRules {
			if strings.EqualFold(b.Name, name) {
				return "", fmt.Errorf("%w: %s", ErrDuplicate, name)
			}
		}
		c.BlockingRules = slices.Insert(c.BlockingRules, 0, domain.BlockingRule{ID: id, Name: name, Flags: flags, Status: status})
	case SectionCancelReasons:
		for _, cr := range c.CancelReasons {
			if strings.EqualFold(cr.Reason, name) {
				return "", fmt.Errorf("%w: %s", ErrDuplicate, name)
			}
		}
		c.CancelReasons = slices.Insert(c.CancelReasons, 0, domain.CancelReason{ID: id, Reason: name, Status: status})
	case SectionPurposes, SectionNotifications, SectionVolunteerUploads:
		return "", fmt.Errorf("%w: add to %s", ErrUnsupported, section)
	default:
		return "", fmt.Errorf("%w: section %q", ErrNotFound, section)
	}

	logging.Info(r.logger, "admin record added", logging.FieldBrand, c.Brand, "section", section, "id", id)
	return id, nil
}

// Update applies patch to the record id in section.
func (r *Registry) Update(brand, section, id string, patch Patch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalid, *patch.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(brand)
	if err != nil {
		return err
	}

	switch section {
	case SectionPurposes:
		if patch.Purpose != nil || patch.Flags != nil || patch.Checked != nil {
			return fmt.Errorf("%w: purposes only change status", ErrUnsupported)
		}
		i := slices.IndexFunc(c.Purposes, func(p domain.Purpose) bool { return p.ID == id })
		if i < 0 {
			return notFound(section, id)
		}
		setStatus(&c.Purposes[i].Status, patch.Status)
	case SectionDocumentTypes:
		if patch.Flags != nil || patch.Checked != nil {
			return fmt.Errorf("%w: document types change status or purpose", ErrUnsupported)
		}
		i := slices.IndexFunc(c.DocumentTypes, func(d domain.DocumentType) bool { return d.ID == id })
		if i < 0 {
			return notFound(section, id)
		}
		if patch.Purpose != nil {
			if !slices.Contains(domain.PurposeCodes, *patch.Purpose) {
				return fmt.Errorf("%w: purpose %q", ErrInvalid, *patch.Purpose)
			}
			c.DocumentTypes[i].Purpose = *patch.Purpose
		}
		setStatus(&c.DocumentTypes[i].Status, patch.Status)
	case SectionBlockingRules:
		if patch.Purpose != nil || patch.Checked != nil {
			return fmt.Errorf("%w: blocking rules change status or flags", ErrUnsupported)
		}
		i := slices.IndexFunc(c.BlockingRules, func(b domain.BlockingRule) bool { return b.ID == id })
		if i < 0 {
			return notFound(section, id)
		}
		flags := domain.NewFlags(false)
		for k, v := range c.BlockingRules[i].Flags {
			flags[k] = v
		}
		if err := mergeFlags(flags, patch.Flags); err != nil {
			return err
		}
		c.BlockingRules[i].Flags = flags
		setStatus(&c.BlockingRules[i].Status, patch.Status)
	case SectionCancelReasons:
		if patch.Purpose != nil || patch.Flags != nil || patch.Checked != nil {
			return fmt.Errorf("%w: cancel reasons only change status", ErrUnsupported)
		}
		i := slices.IndexFunc(c.CancelReasons, func(cr domain.CancelReason) bool { return cr.ID == id })
		if i < 0 {
			return notFound(section, id)
		}
		setStatus(&c.CancelReasons[i].Status, patch.Status)
	case SectionNotifications:
		if err := setOption(c.Notifications, section, id, patch); err != nil {
			return err
		}
	case SectionVolunteerUploads:
		if err := setOption(c.VolunteerUploads, section, id, patch); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: section %q", ErrNotFound, section)
	}

	logging.Info(r.logger, "admin record updated", logging.FieldBrand, c.Brand, "section", section, "id", id)
	return nil
}

// Toggle flips a notification or volunteer-upload option.
func (r *Registry) Toggle(brand, section, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(brand)
	if err != nil {
		return false, err
	}
	var opts []domain.Option
	switch section {
	case SectionNotifications:
		opts = c.Notifications
	case SectionVolunteerUploads:
		opts = c.VolunteerUploads
	default:
		return false, fmt.Errorf("%w: toggle %s", ErrUnsupported, section)
	}
	i := slices.IndexFunc(opts, func(o domain.Option) bool { return o.ID == id })
	if i < 0 {
		return false, notFound(section, id)
	}
	opts[i].Checked = !opts[i].Checked
	return opts[i].Checked, nil
}

func (r *Registry) lookup(brand string) (*domain.Catalog, error) {
	if brand == "" {
		brand = r.defaultBrand()
	}
	c, ok := r.catalogs[brand]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrand, brand)
	}
	return c, nil
}

func (r *Registry) defaultBrand() string {
	if _, ok := r.catalogs[DefaultBrand]; ok {
		return DefaultBrand
	}
	return r.brands[0]
}

func setOption(opts []domain.Option, section, id string, patch Patch) error {
	if patch.Status != nil || patch.Purpose != nil || patch.Flags != nil {
		return fmt.Errorf("%w: options only change checked", ErrUnsupported)
	}
	i := slices.IndexFunc(opts, func(o domain.Option) bool { return o.ID == id })
	if i < 0 {
		return notFound(section, id)
	}
	if patch.Checked != nil {
		opts[i].Checked = *patch.Checked
	}
	return nil
}

func mergeFlags(dst, src map[string]bool) error {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			return fmt.Errorf("%w: unknown flag %q", ErrInvalid, k)
		}
		dst[k] = v
	}
	return nil
}

func setStatus(dst *domain.Status, status *domain.Status) {
	if status != nil {
		*dst = *status
	}
}

func notFound(section, id string) error {
	return fmt.Errorf("%w: %s/%s", ErrNotFound, section, id)
}
