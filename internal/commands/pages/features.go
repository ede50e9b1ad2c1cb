package pagescmd

import (
	"errors"

	"github.com/linkmax/lnkmx/internal/pages"
)

var (
	ErrPremiumDisabled    = errors.New("pages: premium blocks are not enabled for this page")
	ErrSchedulingDisabled = errors.New("pages: block scheduling is not enabled")
)

// FeatureGates exposes runtime toggles consulted by the page command handlers.
// Nil functions count as enabled.
type FeatureGates struct {
	// PremiumEnabled reports whether premium-gated block types may be added.
	PremiumEnabled func() bool
	// SchedulingEnabled reports whether blocks may be given visibility windows.
	SchedulingEnabled func() bool
}

func (g FeatureGates) premiumEnabled() bool {
	if g.PremiumEnabled == nil {
		return true
	}
	return g.PremiumEnabled()
}

func (g FeatureGates) schedulingEnabled() bool {
	if g.SchedulingEnabled == nil {
		return true
	}
	return g.SchedulingEnabled()
}

// classify leaves feature gate errors to the generic command category and
// tags everything else as a page error.
func classify(err error) error {
	if errors.Is(err, ErrPremiumDisabled) || errors.Is(err, ErrSchedulingDisabled) {
		return err
	}
	return pages.Classify(err)
}
