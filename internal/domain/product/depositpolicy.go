package product

import "fmt"

// DefaultMaxDimensionCM is the size above which a product requires a deposit.
const DefaultMaxDimensionCM = 15

// DefaultMaxEntryDimensionCM caps the dimensions accepted on product entry.
const DefaultMaxEntryDimensionCM = 300

// Dimensions of a product in whole centimetres.
type Dimensions struct {
	HeightCM int
	WidthCM  int
	DepthCM  int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%dcm", d.HeightCM, d.WidthCM, d.DepthCM)
}

// DepositPolicy decides whether a product needs a guarantee deposit.
type DepositPolicy struct {
	maxDimensionCM      int
	maxEntryDimensionCM int
}

// NewDepositPolicy panics on a non-positive threshold; both values come from
// validated configuration.
func NewDepositPolicy(maxDimensionCM, maxEntryDimensionCM int) DepositPolicy {
	if maxDimensionCM <= 0 || maxEntryDimensionCM < maxDimensionCM {
		panic(fmt.Sprintf("invalid deposit policy thresholds: max=%d entry=%d", maxDimensionCM, maxEntryDimensionCM))
	}
	return DepositPolicy{
		maxDimensionCM:      maxDimensionCM,
		maxEntryDimensionCM: maxEntryDimensionCM,
	}
}

// DefaultDepositPolicy returns the policy with the stock thresholds.
func DefaultDepositPolicy() DepositPolicy {
	return NewDepositPolicy(DefaultMaxDimensionCM, DefaultMaxEntryDimensionCM)
}

func (p DepositPolicy) MaxDimensionCM() int {
	return p.maxDimensionCM
}

func (p DepositPolicy) MaxEntryDimensionCM() int {
	return p.maxEntryDimensionCM
}

// Evaluate reports whether any dimension exceeds the deposit threshold.
// Every dimension must be positive.
func (p DepositPolicy) Evaluate(heightCM, widthCM, depthCM int) (bool, error) {
	for _, d := range []struct {
		name  string
		value int
	}{{"height", heightCM}, {"width", widthCM}, {"depth", depthCM}} {
		if d.value <= 0 {
			return false, errDimension(d.name, d.value, 0)
		}
	}
	return heightCM > p.maxDimensionCM || widthCM > p.maxDimensionCM || depthCM > p.maxDimensionCM, nil
}

// Accept validates dimensions entered for a product and evaluates them.
// Values above the entry cap are rejected before the deposit rule applies.
func (p DepositPolicy) Accept(d Dimensions) (bool, error) {
	requires, err := p.Evaluate(d.HeightCM, d.WidthCM, d.DepthCM)
	if err != nil {
		return false, err
	}
	if d.HeightCM > p.maxEntryDimensionCM {
		return false, errDimension("height", d.HeightCM, p.maxEntryDimensionCM)
	}
	if d.WidthCM > p.maxEntryDimensionCM {
		return false, errDimension("width", d.WidthCM, p.maxEntryDimensionCM)
	}
	if d.DepthCM > p.maxEntryDimensionCM {
		return false, errDimension("depth", d.DepthCM, p.maxEntryDimensionCM)
	}
	return requires, nil
}
