package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/delphi/internal/model"
)

func TestRankKey(t *testing.T) {
	assert.Equal(t, "delphi:ranks:points:2024:1042", RankKey(model.StatPoints, 2024, 1042))
	assert.NotEqual(t, RankKey(model.StatPoints, 2024, 1042), RankKey(model.StatPoints, 2024, 1043))
	assert.NotEqual(t, RankKey(model.StatPoints, 2024, 1042), RankKey(model.StatRebounds, 2024, 1042))
}
