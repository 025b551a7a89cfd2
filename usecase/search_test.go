package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchToSQL_PriceCeiling(t *testing.T) {
	svc := NewSearchService()

	q := svc.ToSQL("ราคาไม่เกิน 5 ล้าน")

	assert.Contains(t, q.SQL, "price_total")
	assert.Equal(t, 5_000_000, q.Bindings["limit"])
	assert.Contains(t, q.Explain, "5 ล้าน")
}

func TestSearchToSQL_TotalArea(t *testing.T) {
	svc := NewSearchService()

	q := svc.ToSQL("wc มีทั้งหมดกี่ไร่")

	assert.Contains(t, q.SQL, "sum(area_rai)")
	assert.Equal(t, "WC", q.Bindings["code"])
}

func TestSearchToSQL_NearBeach(t *testing.T) {
	svc := NewSearchService()

	q := svc.ToSQL("ใกล้ชายหาด 3 กม.")

	assert.Contains(t, q.SQL, "ST_DistanceSphere")
	assert.Equal(t, 3000, q.Bindings["meters"])
}

func TestSearchToSQL_Fallback(t *testing.T) {
	svc := NewSearchService()

	q := svc.ToSQL("อะไรก็ได้")

	assert.Contains(t, q.SQL, "limit 50")
	assert.Empty(t, q.Bindings)
}

func TestSearchToSQL_CaseInsensitive(t *testing.T) {
	svc := NewSearchService()

	q := svc.ToSQL("  WC มีทั้งหมดกี่ไร่  ")

	assert.Equal(t, "WC", q.Bindings["code"])
}
