// Package blocks exposes the block content model: the closed set of block
// types, their registry metadata and per-variant validation.
package blocks

import (
	"time"

	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
)

type (
	Block            = blocks.Block
	Type             = blocks.Type
	Category         = blocks.Category
	Schedule         = blocks.Schedule
	Definition       = blocks.Definition
	FieldRule        = blocks.FieldRule
	Kind             = blocks.Kind
	ValidationResult = blocks.ValidationResult
)

const (
	TypeProfile     = blocks.TypeProfile
	TypeLink        = blocks.TypeLink
	TypeButton      = blocks.TypeButton
	TypeSocials     = blocks.TypeSocials
	TypeText        = blocks.TypeText
	TypeImage       = blocks.TypeImage
	TypeProduct     = blocks.TypeProduct
	TypeVideo       = blocks.TypeVideo
	TypeCarousel    = blocks.TypeCarousel
	TypeCustomCode  = blocks.TypeCustomCode
	TypeMessenger   = blocks.TypeMessenger
	TypeForm        = blocks.TypeForm
	TypeDownload    = blocks.TypeDownload
	TypeNewsletter  = blocks.TypeNewsletter
	TypeTestimonial = blocks.TypeTestimonial
	TypeScratch     = blocks.TypeScratch
	TypeMap         = blocks.TypeMap
	TypeAvatar      = blocks.TypeAvatar
	TypeSeparator   = blocks.TypeSeparator
	TypeCatalog     = blocks.TypeCatalog
	TypeBeforeAfter = blocks.TypeBeforeAfter
	TypeFAQ         = blocks.TypeFAQ
	TypeCountdown   = blocks.TypeCountdown
	TypePricing     = blocks.TypePricing
	TypeShoutout    = blocks.TypeShoutout
	TypeBooking     = blocks.TypeBooking
	TypeCommunity   = blocks.TypeCommunity
	TypeEvent       = blocks.TypeEvent
)

const (
	CategoryBasic       = blocks.CategoryBasic
	CategoryMedia       = blocks.CategoryMedia
	CategoryInteractive = blocks.CategoryInteractive
	CategoryCommerce    = blocks.CategoryCommerce
	CategoryAdvanced    = blocks.CategoryAdvanced
	CategorySocial      = blocks.CategorySocial
	CategoryServices    = blocks.CategoryServices
)

var (
	ErrUnknownType     = blocks.ErrUnknownType
	ErrReservedField   = blocks.ErrReservedField
	ErrInvalidSchedule = blocks.ErrInvalidSchedule
	ErrBlockRequired   = blocks.ErrBlockRequired
)

func NewBlock(t Type, fields map[string]any) (Block, error) { return blocks.NewBlock(t, fields) }

func FromMap(raw map[string]any) (Block, error) { return blocks.FromMap(raw) }

func NewSchedule(start, end *time.Time) *Schedule { return blocks.NewSchedule(start, end) }

func GenerateID(t Type) string { return blocks.GenerateID(t) }

func Validate(b Block) ValidationResult { return blocks.Validate(b) }

func Lookup(t Type) (Definition, bool) { return blocks.Lookup(t) }

func IsKnown(t Type) bool { return blocks.IsKnown(t) }

func CategoryOf(t Type) Category { return blocks.CategoryOf(t) }

func IsPremiumGated(t Type) bool { return blocks.IsPremiumGated(t) }

func IsScheduleVisible(b Block, now time.Time) bool { return blocks.IsScheduleVisible(b, now) }

func VisibleAt(list []Block, now time.Time) []Block { return blocks.VisibleAt(list, now) }

func Types() []Type { return blocks.Types() }

func Definitions() []Definition { return blocks.Definitions() }

func ByCategory(c Category) []Type { return blocks.ByCategory(c) }

func LocalizableFields(t Type) []string { return blocks.LocalizableFields(t) }

func ConvertLanguages(b Block, langs []i18n.Language) Block { return blocks.ConvertLanguages(b, langs) }
