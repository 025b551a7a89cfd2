package usecase

import (
	"regexp"
	"strconv"
	"strings"

	domainSearch "github.com/nextplot/nextplot-gw/domains/search"
)

// Fixed question templates. This is deliberately not a parser: each template
// is one regex over the lowercased question.
var (
	patternPriceCeiling = regexp.MustCompile(`ราคา(ไม่เกิน|<=?)\s*(\d+)\s*ล้าน`)
	patternTotalArea    = regexp.MustCompile(`\b([a-z]{1,10})\b.*(กี่ไร่|รวมกี่ไร่)`)
	patternNearBeach    = regexp.MustCompile(`ใกล้(ชายหาด|ทะเล)\s*(\d+)\s*กม`)
)

const nearBeachSQL = `select p.*
from properties p
join named_points np on np.slug = 'beach'
where p.lat is not null and p.lon is not null
  and ST_DistanceSphere(ST_SetSRID(ST_Point(p.lon, p.lat),4326), np.geom) <= :meters
order by price_total asc nulls last`

type searchService struct{}

func NewSearchService() domainSearch.ISearchUsecase {
	return &searchService{}
}

// ToSQL matches q against the known templates in order; first hit wins.
// Unmatched questions fall back to the latest-50 listing.
func (s *searchService) ToSQL(q string) domainSearch.Query {
	qNorm := strings.ToLower(strings.TrimSpace(q))

	// ราคาไม่เกิน X ล้าน
	if m := patternPriceCeiling.FindStringSubmatch(qNorm); m != nil {
		millions, _ := strconv.Atoi(m[2])
		return domainSearch.Query{
			SQL:      "select * from properties where coalesce(price_total,0) <= :limit order by price_total asc",
			Bindings: map[string]any{"limit": millions * 1_000_000},
			Explain:  "ราคาไม่เกิน " + m[2] + " ล้าน",
		}
	}

	// WC มีทั้งหมดกี่ไร่
	if m := patternTotalArea.FindStringSubmatch(qNorm); m != nil {
		code := strings.ToUpper(m[1])
		return domainSearch.Query{
			SQL:      "select coalesce(sum(area_rai),0) as total_rai from properties where upper(code) = :code",
			Bindings: map[string]any{"code": code},
			Explain:  "รวมพื้นที่ของโค้ด " + code,
		}
	}

	// ใกล้ชายหาด X กม.
	if m := patternNearBeach.FindStringSubmatch(qNorm); m != nil {
		km, _ := strconv.Atoi(m[2])
		return domainSearch.Query{
			SQL:      nearBeachSQL,
			Bindings: map[string]any{"meters": km * 1000},
			Explain:  "ใกล้ชายหาดไม่เกิน " + m[2] + " กม.",
		}
	}

	return domainSearch.Query{
		SQL:      "select * from properties order by created_at desc limit 50",
		Bindings: map[string]any{},
		Explain:  "ไม่เข้าใจคำถาม ใช้ 50 รายการล่าสุด",
	}
}
