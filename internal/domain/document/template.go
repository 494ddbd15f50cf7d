package document

import (
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
)

// DocumentType identifies a generated HR document
type DocumentType string

const (
	TypeEmploymentCertificate DocumentType = "employment_certificate"
	TypeLeaveRequestForm      DocumentType = "leave_request_form"
	TypeAttendanceSheet       DocumentType = "attendance_sheet"
)

// AllDocumentTypes lists the renderable document types
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		TypeEmploymentCertificate,
		TypeLeaveRequestForm,
		TypeAttendanceSheet,
	}
}

func (t DocumentType) IsValid() bool {
	switch t {
	case TypeEmploymentCertificate, TypeLeaveRequestForm, TypeAttendanceSheet:
		return true
	}
	return false
}

// PaperSize is the output paper format
type PaperSize string

const (
	PaperA4     PaperSize = "A4"
	PaperA5     PaperSize = "A5"
	PaperLetter PaperSize = "letter"
)

func (p PaperSize) IsValid() bool {
	switch p {
	case PaperA4, PaperA5, PaperLetter:
		return true
	}
	return false
}

// Dimensions returns width and height in millimeters, portrait
func (p PaperSize) Dimensions() (width, height float64) {
	switch p {
	case PaperA5:
		return 148, 210
	case PaperLetter:
		return 215.9, 279.4
	default:
		return 210, 297
	}
}

// Orientation is the page orientation
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Margins are page margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns the standard 15mm page margins
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 15, Bottom: 15, Left: 15}
}

const maxTemplateContent = 1 << 20

// Template is an HTML template for one document type. At most one
// template per type carries the default flag; rendering falls back to
// the built-in template when none is stored.
type Template struct {
	shared.BaseAggregateRoot
	DocumentType DocumentType
	Name         string
	Description  string
	Content      string
	PaperSize    PaperSize
	Orientation  Orientation
	Margins      Margins
	IsDefault    bool
	Active       bool
}

// NewTemplate creates an active, non-default template
func NewTemplate(docType DocumentType, name, content string) (*Template, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown document type")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	return &Template{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DocumentType:      docType,
		Name:              strings.TrimSpace(name),
		Content:           content,
		PaperSize:         PaperA4,
		Orientation:       OrientationPortrait,
		Margins:           DefaultMargins(),
		Active:            true,
	}, nil
}

// Update changes the template's name and description
func (t *Template) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.touch()
	return nil
}

// UpdateContent replaces the template HTML
func (t *Template) UpdateContent(content string) error {
	if err := validateContent(content); err != nil {
		return err
	}
	t.Content = content
	t.touch()
	return nil
}

// SetLayout changes paper size, orientation and margins
func (t *Template) SetLayout(paperSize PaperSize, orientation Orientation, margins Margins) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown paper size")
	}
	if !orientation.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown orientation")
	}
	t.PaperSize = paperSize
	t.Orientation = orientation
	t.Margins = margins
	t.touch()
	return nil
}

// SetAsDefault marks the template as the default for its type. The
// caller clears the flag on the previous default.
func (t *Template) SetAsDefault() error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "An inactive template cannot be the default")
	}
	if t.IsDefault {
		return nil
	}
	t.IsDefault = true
	t.touch()
	return nil
}

// UnsetDefault clears the default flag
func (t *Template) UnsetDefault() {
	if !t.IsDefault {
		return
	}
	t.IsDefault = false
	t.touch()
}

// Activate puts the template back into use
func (t *Template) Activate() {
	if t.Active {
		return
	}
	t.Active = true
	t.touch()
}

// Deactivate withdraws the template. The default template stays active
// until another takes over.
func (t *Template) Deactivate() error {
	if t.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Set another template as default before deactivating this one")
	}
	if !t.Active {
		return nil
	}
	t.Active = false
	t.touch()
	return nil
}

// CanRender reports whether the template can drive a rendering
func (t *Template) CanRender() bool {
	return t.Active && t.Content != ""
}

func (t *Template) touch() {
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_INPUT", "Template name is required")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Template name cannot exceed 100 characters")
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Template content is required")
	}
	if len(content) > maxTemplateContent {
		return shared.NewDomainError("INVALID_INPUT", "Template content cannot exceed 1MB")
	}
	return nil
}
