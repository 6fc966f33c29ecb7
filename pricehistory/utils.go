package pricehistory

import (
	"sort"
	"time"

	"github.com/cgweb/market-proxy/coingecko"
)

// DateLayout is the calendar date format accepted for range bounds
const DateLayout = "2006-01-02"

// timeBounds converts the date strings into inclusive unix-second bounds.
// A reversed range is swapped; the from day starts at midnight UTC and the
// to day is covered through its last second.
func timeBounds(dateFrom, dateTo string) (int64, int64, error) {
	from, err := time.ParseInLocation(DateLayout, dateFrom, time.UTC)
	if err != nil {
		return 0, 0, &coingecko.ValidationError{Msg: "bad dates (use YYYY-MM-DD)"}
	}
	to, err := time.ParseInLocation(DateLayout, dateTo, time.UTC)
	if err != nil {
		return 0, 0, &coingecko.ValidationError{Msg: "bad dates (use YYYY-MM-DD)"}
	}

	if to.Before(from) {
		from, to = to, from
	}

	return from.Unix(), to.AddDate(0, 0, 1).Add(-time.Second).Unix(), nil
}

// aggregateDaily buckets raw [ms, price] samples into one point per UTC
// calendar day. Samples arrive in ascending time order, so the last price
// written for a day wins. Malformed pairs are skipped.
func aggregateDaily(samples [][]float64) []Point {
	byDay := make(map[string]float64)
	for _, sample := range samples {
		if len(sample) < 2 {
			continue
		}
		day := time.UnixMilli(int64(sample[0])).UTC().Format(DateLayout)
		byDay[day] = sample[1]
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]Point, 0, len(days))
	for _, day := range days {
		points = append(points, Point{Date: day, Price: byDay[day]})
	}
	return points
}
