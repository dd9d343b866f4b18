package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/pip"
	"github.com/Nsfr750/pack/pkg/python/reqs"
)

func TestPrintInstalled(t *testing.T) {
	t.Parallel()
	installed := map[string]pip.Installed{
		"requests": {Name: "requests", Version: "2.31.0"},
		"click":    {Name: "click", Version: "8.1.7"},
	}
	var buf strings.Builder
	require.NoError(t, printInstalled(&buf, installed))
	assert.Equal(t, ""+
		"NAME      VERSION\n"+
		"click     8.1.7\n"+
		"requests  2.31.0\n",
		buf.String())
}

func TestPrintDeclared(t *testing.T) {
	t.Parallel()
	var declared []reqs.Requirement
	for _, str := range []string{"requests>=2.25", "click"} {
		req, err := reqs.Parse(str)
		require.NoError(t, err)
		declared = append(declared, *req)
	}
	installed := map[string]pip.Installed{
		"requests": {Name: "requests", Version: "2.31.0"},
	}
	var buf strings.Builder
	require.NoError(t, printDeclared(&buf, declared, installed))
	assert.Equal(t, ""+
		"NAME      REQUIRED  INSTALLED\n"+
		"click     *         -\n"+
		"requests  >=2.25    2.31.0\n",
		buf.String())
}
