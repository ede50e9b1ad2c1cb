package blocks

import (
	"errors"
	"time"
)

// Type is the closed set of block variant tags.
type Type string

const (
	TypeProfile     Type = "profile"
	TypeLink        Type = "link"
	TypeButton      Type = "button"
	TypeSocials     Type = "socials"
	TypeText        Type = "text"
	TypeImage       Type = "image"
	TypeProduct     Type = "product"
	TypeVideo       Type = "video"
	TypeCarousel    Type = "carousel"
	TypeCustomCode  Type = "custom_code"
	TypeMessenger   Type = "messenger"
	TypeForm        Type = "form"
	TypeDownload    Type = "download"
	TypeNewsletter  Type = "newsletter"
	TypeTestimonial Type = "testimonial"
	TypeScratch     Type = "scratch"
	TypeMap         Type = "map"
	TypeAvatar      Type = "avatar"
	TypeSeparator   Type = "separator"
	TypeCatalog     Type = "catalog"
	TypeBeforeAfter Type = "before_after"
	TypeFAQ         Type = "faq"
	TypeCountdown   Type = "countdown"
	TypePricing     Type = "pricing"
	TypeShoutout    Type = "shoutout"
	TypeBooking     Type = "booking"
	TypeCommunity   Type = "community"
	TypeEvent       Type = "event"
)

// Category groups block types in pickers.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryMedia       Category = "media"
	CategoryInteractive Category = "interactive"
	CategoryCommerce    Category = "commerce"
	CategoryAdvanced    Category = "advanced"
	CategorySocial      Category = "social"
	CategoryServices    Category = "services"
)

// Reserved payload keys carried by typed Block fields rather than Fields.
const (
	KeyID       = "id"
	KeyType     = "type"
	KeySchedule = "schedule"
	KeyStyle    = "style"
)

var (
	ErrUnknownType     = errors.New("blocks: unknown block type")
	ErrReservedField   = errors.New("blocks: field name is reserved")
	ErrInvalidSchedule = errors.New("blocks: invalid schedule")
	ErrBlockRequired   = errors.New("blocks: block payload required")
)

// Block is one entry of a page's block list. Shared fields are typed; the
// variant payload lives in Fields and is interpreted through the registry.
type Block struct {
	ID       string         `json:"id"`
	Type     Type           `json:"type"`
	Schedule *Schedule      `json:"schedule,omitempty"`
	Style    map[string]any `json:"style,omitempty"`
	Fields   map[string]any `json:"-"`
}

// Schedule bounds the time window in which a block is visible. Either end
// may be open.
type Schedule struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ValidationResult is the accumulated outcome of a validation pass. It is
// never returned as an error.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newValidationResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
