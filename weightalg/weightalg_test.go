// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weightalg_test

import (
	"testing"

	"github.com/js-arias/gctree/weightalg"
)

func TestStableSumOrderIndependent(t *testing.T) {
	a := weightalg.FloatSum(0.1).Add(weightalg.FloatSum(0.2)).Add(weightalg.FloatSum(0.3))
	b := weightalg.FloatSum(0.3).Add(weightalg.FloatSum(0.1)).Add(weightalg.FloatSum(0.2))
	if a.Cmp(b) != 0 {
		t.Errorf("sums in different order: %v vs %v, want equal", a.Float64(), b.Float64())
	}
}

func TestStableSumCmp(t *testing.T) {
	a := weightalg.FloatSum(-5)
	b := weightalg.FloatSum(-12)
	if a.Cmp(b) <= 0 {
		t.Errorf("-5 should be > -12, got Cmp = %d", a.Cmp(b))
	}
}

func TestProduct2AccumComponentwise(t *testing.T) {
	alleleAlg := weightalg.AlleleCount()
	composed := weightalg.Product2(alleleAlg, alleleAlg)
	start := composed.Start()
	if start.A != 0 || start.B != 0 {
		t.Errorf("Start() = %v, want (0, 0)", start)
	}
}
