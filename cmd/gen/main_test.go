package main

import (
	"bufio"
	"brc/agg"
	"brc/source"
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParses(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	all := pickStations(r, 50)
	require.Len(t, all, 50)
	assert.Equal(t, "Abha", all[0].name)
	assert.Equal(t, "Station-49", all[49].name)

	var b bytes.Buffer
	require.NoError(t, generate(bufio.NewWriter(&b), r, all, 10_000))

	res, err := agg.Run(context.Background(), source.FromBytes(b.Bytes()), agg.WithWorkers(4))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res), 50)
	assert.NotEmpty(t, res)

	for key, s := range res {
		assert.LessOrEqual(t, s.Min, s.Mean, key)
		assert.LessOrEqual(t, s.Mean, s.Max, key)
		assert.GreaterOrEqual(t, int64(s.Min), int64(-999), key)
		assert.LessOrEqual(t, int64(s.Max), int64(999), key)
	}
}

func TestPickStationsSubset(t *testing.T) {
	all := pickStations(rand.New(rand.NewSource(1)), 3)
	assert.Equal(t, []string{"Abha", "Abidjan", "Accra"}, []string{all[0].name, all[1].name, all[2].name})
}
