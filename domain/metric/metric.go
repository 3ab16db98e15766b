// Package metric classifies the pairwise proportionality metrics by the
// direction of their significance: for a direct metric large values mean
// strong proportionality, for an inverse metric small values do.
package metric

import "fmt"

// Metric names a pairwise proportionality statistic.
type Metric string

const (
	Rho        Metric = "rho"
	Phi        Metric = "phi"
	Phs        Metric = "phs"
	Cor        Metric = "cor"
	Vlr        Metric = "vlr"
	Pcor       Metric = "pcor"
	PcorShrink Metric = "pcor.shrink"
	PcorBs     Metric = "pcor.bshrink"
)

// direct metrics: large value = proportional pair.
var direct = map[Metric]bool{
	Rho:        true,
	Cor:        true,
	Pcor:       true,
	PcorShrink: true,
	PcorBs:     true,
}

// asymmetric metrics: statistic(x, y) != statistic(y, x) unless symmetrized.
var asymmetric = map[Metric]bool{
	Phi: true,
}

// symmetric variants exist for these asymmetric metrics.
var symmetrizable = map[Metric]bool{
	Phi: true,
}

// IsDirect reports whether larger values of m indicate stronger proportionality.
func (m Metric) IsDirect() bool {
	return direct[m]
}

// IsAsymmetric reports whether m depends on pair order when not symmetrized.
func (m Metric) IsAsymmetric() bool {
	return asymmetric[m]
}

// HasSymmetricVariant reports whether an asymmetric metric offers a
// symmetrized form.
func (m Metric) HasSymmetricVariant() bool {
	return symmetrizable[m]
}

// Known reports whether m is a recognized metric name.
func (m Metric) Known() bool {
	switch m {
	case Rho, Phi, Phs, Cor, Vlr, Pcor, PcorShrink, PcorBs:
		return true
	}
	return false
}

// Validate returns an error for unrecognized metric names.
func (m Metric) Validate() error {
	if !m.Known() {
		return fmt.Errorf("unknown proportionality metric %q", string(m))
	}
	return nil
}

func (m Metric) String() string { return string(m) }
