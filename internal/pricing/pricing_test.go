package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

func TestCountByCategory(t *testing.T) {
	group := []model.Person{
		{Name: "Ana", Category: model.PersonAdult},
		{Name: "Ben", Category: model.PersonAdult},
		{Name: "Cleo", Category: model.PersonChild},
	}

	t.Run("counts matching categories", func(t *testing.T) {
		assert.Equal(t, 2, CountByCategory(group, model.PersonAdult))
		assert.Equal(t, 1, CountByCategory(group, model.PersonChild))
	})

	t.Run("empty slice yields zero for every category", func(t *testing.T) {
		assert.Equal(t, 0, CountByCategory(nil, model.PersonAdult))
		assert.Equal(t, 0, CountByCategory([]model.Person{}, model.PersonChild))
	})

	t.Run("unknown category matches nothing", func(t *testing.T) {
		assert.Equal(t, 0, CountByCategory(group, "infant"))
	})
}

func TestComputeTotal(t *testing.T) {
	price := model.TourPrice{AdultCents: 2_000_000, ChildCents: 1_500_000}

	t.Run("sums per-category products", func(t *testing.T) {
		assert.Equal(t, int64(5_500_000), ComputeTotal(2, 1, price))
	})

	t.Run("zero counts yield zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ComputeTotal(0, 0, price))
	})

	t.Run("free categories contribute nothing", func(t *testing.T) {
		free := model.TourPrice{AdultCents: 120_000, ChildCents: 0}
		assert.Equal(t, int64(360_000), ComputeTotal(3, 5, free))
	})

	t.Run("bilinearity over a grid", func(t *testing.T) {
		for a := 0; a <= 4; a++ {
			for c := 0; c <= 4; c++ {
				want := int64(a)*price.AdultCents + int64(c)*price.ChildCents
				assert.Equal(t, want, ComputeTotal(a, c, price))
			}
		}
	})
}

func TestTotalForGroup(t *testing.T) {
	price := model.TourPrice{AdultCents: 500, ChildCents: 300}
	group := []model.Person{
		{Name: "Ana", Category: model.PersonAdult},
		{Name: "Cleo", Category: model.PersonChild},
		{Name: "Dan", Category: model.PersonChild},
	}
	assert.Equal(t, int64(1100), TotalForGroup(group, price))
	assert.Equal(t, int64(0), TotalForGroup(nil, price))
}
