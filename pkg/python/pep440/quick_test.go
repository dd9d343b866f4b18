package pep440_test

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Nsfr750/pack/pkg/python/pep440"
	"github.com/Nsfr750/pack/pkg/testutil"
)

// randomVersion builds an arbitrary but valid version, exercising every
// optional segment.
func randomVersion(rand *rand.Rand) string {
	str := ""
	if rand.Intn(4) == 0 {
		str += fmt.Sprintf("%d!", rand.Intn(3))
	}
	str += fmt.Sprintf("%d", rand.Intn(100))
	for i := rand.Intn(3); i > 0; i-- {
		str += fmt.Sprintf(".%d", rand.Intn(30))
	}
	if rand.Intn(3) == 0 {
		str += []string{"a", "b", "rc"}[rand.Intn(3)] + fmt.Sprintf("%d", rand.Intn(5))
	}
	if rand.Intn(4) == 0 {
		str += fmt.Sprintf(".post%d", rand.Intn(5))
	}
	if rand.Intn(4) == 0 {
		str += fmt.Sprintf(".dev%d", rand.Intn(5))
	}
	if rand.Intn(5) == 0 {
		str += fmt.Sprintf("+local.%d", rand.Intn(10))
	}
	return str
}

type versionString string

func (versionString) Generate(rand *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(versionString(randomVersion(rand)))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	// String() of a parsed version must parse back to an equal version,
	// spelled identically.
	prop := func(str versionString) bool {
		ver, err := pep440.Parse(string(str))
		if err != nil {
			return false
		}
		again, err := pep440.Parse(ver.String())
		if err != nil {
			return false
		}
		return ver.Cmp(*again) == 0 && ver.String() == again.String()
	}
	testutil.QuickCheck(t, prop, testutil.QuickConfig{MaxCount: 500},
		[]interface{}{versionString("1!2.0a1.post3.dev4+local.5")},
		[]interface{}{versionString("0.9.post0")},
		[]interface{}{versionString("1.0rc0.dev0")},
	)
}

func TestCmpAntisymmetric(t *testing.T) {
	t.Parallel()
	prop := func(a, b versionString) bool {
		av, err := pep440.Parse(string(a))
		if err != nil {
			return false
		}
		bv, err := pep440.Parse(string(b))
		if err != nil {
			return false
		}
		return av.Cmp(*bv) == -bv.Cmp(*av)
	}
	testutil.QuickCheck(t, prop, testutil.QuickConfig{MaxCount: 500},
		[]interface{}{versionString("1.0"), versionString("1.0.0")},
		[]interface{}{versionString("1.0+a"), versionString("1.0+b")},
	)
}
